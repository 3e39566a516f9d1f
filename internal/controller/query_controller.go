package controller

import (
	"bufio"
	"context"

	"zeorag-be/internal/dto"
	"zeorag-be/internal/pkg/serverutils"
	"zeorag-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type queryController struct {
	ragService service.IRagService
}

func NewQueryController(ragService service.IRagService) IQueryController {
	return &queryController{
		ragService: ragService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
}

// Query streams the answer back as plain text chunks. Retrieval errors are
// reported before the stream starts; mid-stream failures simply end the
// body early, since the status line is already on the wire.
func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The stream writer runs after this handler returns, so it cannot
	// borrow the request context.
	streamCtx, cancel := context.WithCancel(context.Background())

	stream, err := c.ragService.Query(streamCtx, &req)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for chunk := range stream {
			if chunk.Err != nil {
				return
			}
			if _, err := w.WriteString(chunk.Content); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
