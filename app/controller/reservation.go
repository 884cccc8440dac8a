package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/tourcolombia/booking/app/dto/http"
	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ReservationController struct {
	reservationService *service.ReservationService
}

func NewReservationController(reservationService *service.ReservationService) *ReservationController {
	return &ReservationController{reservationService: reservationService}
}

func (c *ReservationController) Create(ctx echo.Context) error {
	var req httpdto.CreateReservationRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind create reservation request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid request body"))
	}

	if req.UserID == 0 || req.TicketCount <= 0 || req.TransportID == 0 || req.DestinationID == 0 || req.PlaceID == 0 {
		logrus.Debug("Create reservation validation failed: missing fields")
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("all fields are required"))
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  req.UserID,
		"place_id": req.PlaceID,
	}).Info("Create reservation request received")
	reservation, err := c.reservationService.Create(
		ctx.Request().Context(),
		req.UserID,
		req.TicketCount,
		req.TransportID,
		req.DestinationID,
		req.PlaceID,
	)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlace) {
			logrus.WithField("place_id", req.PlaceID).Warn("Create reservation failed: unknown place")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("place does not exist"))
		}
		if errors.Is(err, service.ErrPlaceMismatch) {
			logrus.WithFields(logrus.Fields{
				"place_id":       req.PlaceID,
				"destination_id": req.DestinationID,
			}).Warn("Create reservation failed: place does not belong to destination")
			return ctx.JSON(http.StatusBadRequest, httpdto.Fail("place does not belong to the given destination"))
		}
		logrus.WithError(err).WithField("user_id", req.UserID).Error("Create reservation failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
	}).Info("Reservation created")

	return ctx.JSON(http.StatusCreated, httpdto.OK("reservation created successfully", httpdto.ReservationData{
		ReservationID: reservation.ID,
	}))
}

func (c *ReservationController) ListOptions(ctx echo.Context) error {
	options, err := c.reservationService.ListOptions(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List reservation options failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	data := httpdto.OptionsData{
		Transports:   make([]httpdto.OptionData, 0, len(options.Transports)),
		Destinations: make([]httpdto.OptionData, 0, len(options.Destinations)),
	}
	for _, t := range options.Transports {
		data.Transports = append(data.Transports, httpdto.OptionData{ID: t.ID, Name: t.Name})
	}
	for _, d := range options.Destinations {
		data.Destinations = append(data.Destinations, httpdto.OptionData{ID: d.ID, Name: d.Name})
	}

	return ctx.JSON(http.StatusOK, httpdto.OK("options retrieved", data))
}

func (c *ReservationController) ListPlaces(ctx echo.Context) error {
	destinationID, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid destination id"))
	}

	places, err := c.reservationService.ListPlaces(ctx.Request().Context(), destinationID)
	if err != nil {
		logrus.WithError(err).WithField("destination_id", destinationID).Error("List places failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	data := make([]httpdto.OptionData, 0, len(places))
	for _, p := range places {
		data = append(data, httpdto.OptionData{ID: p.ID, Name: p.Name})
	}

	return ctx.JSON(http.StatusOK, httpdto.OK("places retrieved", data))
}

func (c *ReservationController) ListForUser(ctx echo.Context) error {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid user id"))
	}

	reservations, err := c.reservationService.ListForUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List reservations failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	return ctx.JSON(http.StatusOK, httpdto.OK("reservations retrieved", reservationRows(reservations)))
}

func (c *ReservationController) Cancel(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Fail("invalid reservation id"))
	}

	logrus.WithField("reservation_id", id).Info("Cancel reservation request received")
	if err := c.reservationService.Cancel(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.Fail("reservation not found"))
		}
		logrus.WithError(err).WithField("reservation_id", id).Error("Cancel reservation failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Fail("internal server error"))
	}

	logrus.WithField("reservation_id", id).Info("Reservation cancelled")
	return ctx.JSON(http.StatusOK, httpdto.OK("reservation cancelled successfully", nil))
}

func reservationRows(details []entity.ReservationDetail) []httpdto.ReservationRow {
	rows := make([]httpdto.ReservationRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, httpdto.ReservationRow{
			ReservationID: d.ID,
			TicketCount:   d.TicketCount,
			Transport:     d.Transport,
			Destination:   d.Destination,
			Place:         d.Place,
			Status:        d.Status,
			CreatedAt:     d.CreatedAt,
		})
	}
	return rows
}
