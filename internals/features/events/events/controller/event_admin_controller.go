package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/constants"
	"okoce_backend/internals/features/events/events/dto"
	"okoce_backend/internals/features/events/events/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
	"okoce_backend/internals/helpers/upload"
)

type EventAdminController struct {
	Svc    *service.EventService
	Images *upload.ImageStore
}

func NewEventAdminController(svc *service.EventService, images *upload.ImageStore) *EventAdminController {
	return &EventAdminController{Svc: svc, Images: images}
}

// saveImage: nil kalau tidak ada file di field gambar_event.
func (ac *EventAdminController) saveImage(c *fiber.Ctx) (*string, error) {
	fh, err := c.FormFile("gambar_event")
	if err != nil || fh == nil || strings.TrimSpace(fh.Filename) == "" {
		return nil, nil
	}
	name, err := ac.Images.SaveImage(fh)
	if err != nil {
		if errors.Is(err, upload.ErrNotAllowed) || errors.Is(err, upload.ErrEmptyName) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		log.Println("[ERROR] simpan gambar event:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan gambar")
	}
	return &name, nil
}

func parseForm(c *fiber.Ctx) (dto.EventForm, error) {
	f, err := dto.ParseEventForm(func(k string) string { return c.FormValue(k) })
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return f, nil
}

/* ===================== CRUD ===================== */

// POST /admin/events (multipart)
func (ac *EventAdminController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	f, err := parseForm(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := f.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	img, err := ac.saveImage(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ev, err := ac.Svc.Create(c.Context(), f, img)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[INFO] Event baru dibuat (ID: %d)", ev.ID)
	return helper.JsonCreated(c, "Event berhasil dibuat", ev)
}

// PUT /admin/events/:event_id (multipart)
func (ac *EventAdminController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	f, err := parseForm(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := f.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	img, err := ac.saveImage(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ev, err := ac.Svc.Update(c.Context(), id, f, img)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Event berhasil diperbarui", ev)
}

// GET /admin/events/:event_id
func (ac *EventAdminController) Detail(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := ac.Svc.Detail(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail event", detail)
}

/* ===================== LIST ===================== */

func (ac *EventAdminController) list(c *fiber.Ctx, archived bool, message string) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 100)
	rows, total, err := ac.Svc.List(c.Context(), archived, service.ListFilter{
		Search: c.Query("search"),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, message, rows, helper.BuildPagination(total, p))
}

// GET /admin/events?search=&page=&per_page=
func (ac *EventAdminController) Dashboard(c *fiber.Ctx) error {
	return ac.list(c, false, "Daftar event aktif")
}

// GET /admin/archive
func (ac *EventAdminController) Archived(c *fiber.Ctx) error {
	return ac.list(c, true, "Daftar event arsip")
}

/* ===================== ARCHIVE ===================== */

func (ac *EventAdminController) setArchived(c *fiber.Ctx, archived bool) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ev, err := ac.Svc.SetArchived(c.Context(), id, archived)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := fmt.Sprintf("Event '%s' telah diarsipkan.", ev.Title)
	if !archived {
		msg = fmt.Sprintf("Event '%s' telah dikembalikan.", ev.Title)
	}
	return helper.JsonUpdated(c, msg, ev)
}

// POST /admin/events/:event_id/archive
func (ac *EventAdminController) Archive(c *fiber.Ctx) error { return ac.setArchived(c, true) }

// POST /admin/events/:event_id/unarchive
func (ac *EventAdminController) Unarchive(c *fiber.Ctx) error { return ac.setArchived(c, false) }

func (ac *EventAdminController) bulk(c *fiber.Ctx, archived bool) error {
	if _, err := helperAuth.Require(c, constants.AdminOnly...); err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.BulkArchiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	n, err := ac.Svc.BulkSetArchived(c.Context(), req.EventIDs, archived)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := fmt.Sprintf("%d event berhasil diarsipkan.", n)
	if !archived {
		msg = fmt.Sprintf("%d event berhasil dikembalikan.", n)
	}
	return helper.JsonUpdated(c, msg, fiber.Map{"affected": n})
}

// POST /admin/events/bulk-archive
func (ac *EventAdminController) BulkArchive(c *fiber.Ctx) error { return ac.bulk(c, true) }

// POST /admin/events/bulk-unarchive
func (ac *EventAdminController) BulkUnarchive(c *fiber.Ctx) error { return ac.bulk(c, false) }

/* ===================== PANITIA ===================== */

// GET /admin/panitia/dashboard (admin & panitia)
func (ac *EventAdminController) PanitiaToday(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.StaffRoles...); err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ac.Svc.Today(c.Context())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Event hari ini", rows)
}
