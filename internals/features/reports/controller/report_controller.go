package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/constants"
	"okoce_backend/internals/features/reports/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type ReportController struct {
	Svc *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Svc: svc}
}

func sendCSV(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment;filename="+filename)
	return c.Status(fiber.StatusOK).Send(body)
}

// GET /admin/reports?year=&month=&sort_by=&order=
func (rc *ReportController) Monthly(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	year, month := rc.Svc.ResolvePeriod(c.Query("year"), c.Query("month"))
	report, err := rc.Svc.Monthly(c.Context(), year, month, c.Query("sort_by", "date"), c.Query("order", "asc"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Laporan bulanan", report)
}

// GET /admin/reports/download?year=&month=
func (rc *ReportController) MonthlyCSV(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	year, month := rc.Svc.ResolvePeriod(c.Query("year"), c.Query("month"))
	body, filename, err := rc.Svc.MonthlyCSV(c.Context(), year, month)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendCSV(c, body, filename)
}

// GET /admin/reports/participant-columns
func (rc *ReportController) Columns(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Kolom ekspor peserta", service.ParticipantColumns())
}

// selectedColumns: JSON {"columns": [...]} atau form field "columns" berulang.
func selectedColumns(c *fiber.Ctx) []string {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		var body struct {
			Columns []string `json:"columns"`
		}
		if err := c.BodyParser(&body); err == nil {
			return body.Columns
		}
		return nil
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return form.Value["columns"]
	}
	var cols []string
	for _, v := range c.Request().PostArgs().PeekMulti("columns") {
		cols = append(cols, string(v))
	}
	return cols
}

// POST /admin/events/:event_id/download-csv
func (rc *ReportController) ParticipantsCSV(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	body, filename, err := rc.Svc.ParticipantsCSV(c.Context(), eventID, selectedColumns(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return sendCSV(c, body, filename)
}

// GET /api/admin/user/:user_id/details?event_id=
func (rc *ReportController) UserDetail(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var eventID uint
	if n := c.QueryInt("event_id", 0); n > 0 {
		eventID = uint(n)
	}
	detail, err := rc.Svc.UserDetail(c.Context(), userID, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail peserta", detail)
}
