package handler

import (
	"log/slog"
	"time"

	"github.com/fadilmartias/talent-vault/internal/apperror"
	"github.com/fadilmartias/talent-vault/internal/dto"
	"github.com/fadilmartias/talent-vault/internal/middleware"
	"github.com/fadilmartias/talent-vault/internal/skill"
	"github.com/fadilmartias/talent-vault/internal/usecase"
	"github.com/fadilmartias/talent-vault/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	uploadRateLimit  = 20
	uploadRateWindow = time.Minute
)

type CandidateHandler struct {
	uc  *usecase.CandidateUsecase
	log *slog.Logger
}

func NewCandidateHandler(uc *usecase.CandidateUsecase, log *slog.Logger) *CandidateHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CandidateHandler{uc: uc, log: log}
}

func (h *CandidateHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Live)

	api := app.Group("/api")
	api.Post("/upload", middleware.RateLimiter(uploadRateLimit, uploadRateWindow), h.Upload)
	api.Get("/candidates", h.Candidates)
	api.Get("/download/:id", h.Download)
	api.Get("/skills", h.Skills)
}

func (h *CandidateHandler) Live(c *fiber.Ctx) error {
	return c.SendString("Backend is LIVE")
}

func (h *CandidateHandler) Upload(c *fiber.Ctx) error {
	in := usecase.UploadInput{
		Name:      c.FormValue("name"),
		RawSkills: c.FormValue("skills"),
	}

	if fh, err := c.FormFile("resume"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return h.fail(c, apperror.Validation("upload.read_file", "resume file could not be read"))
		}
		defer f.Close()
		in.FileName = fh.Filename
		in.ContentType = fh.Header.Get(fiber.HeaderContentType)
		in.Size = fh.Size
		in.Body = f
	}

	candidate, err := h.uc.Upload(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume uploaded successfully",
		Data:    dto.NewCandidateDTO(candidate),
	})
}

func (h *CandidateHandler) Candidates(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("skill"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewCandidateDTOs(list))
}

func (h *CandidateHandler) Download(c *fiber.Ctx) error {
	link, err := h.uc.ResolveDownload(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Redirect(link, fiber.StatusFound)
}

func (h *CandidateHandler) Skills(c *fiber.Ctx) error {
	return c.JSON(skill.Catalog())
}

func (h *CandidateHandler) fail(c *fiber.Ctx, err error) error {
	status := apperror.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.ErrorContext(c.UserContext(), "request failed",
			"op", apperror.Op(err),
			"kind", apperror.KindOf(err).String(),
			"path", c.Path(),
			"error", err,
		)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    status,
		Message: apperror.PublicMessage(err),
	})
}
