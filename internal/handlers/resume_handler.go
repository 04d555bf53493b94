package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conductum/ats-api/internal/models"
	"conductum/ats-api/internal/services"
)

type ResumeHandler struct {
	parser services.ResumeParserService
	log    *zap.Logger
}

func NewResumeHandler(parser services.ResumeParserService, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{
		parser: parser,
		log:    log,
	}
}

// HandleParse handles POST /resume/parse. The upload is processed entirely in
// memory and nothing persists beyond the request.
func (h *ResumeHandler) HandleParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	doc := &models.RawDocument{
		Filename:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}

	profile, err := h.parser.ParseResume(c.Context(), doc)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedMediaType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only PDF resumes are accepted",
			})
		case errors.Is(err, services.ErrUnreadableDocument):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "PDF text layer not accessible.",
			})
		default:
			h.log.Error("resume parsing failed",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process resume",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
