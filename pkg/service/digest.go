package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/theapemachine/herewego/pkg/digest"
	"github.com/theapemachine/herewego/pkg/metrics"
)

// NoEntityProvided is the error body for a query without an entity.
const NoEntityProvided = "No entity provided"

/*
Digester answers an entity query. digest.Pipeline is the production
implementation.
*/
type Digester interface {
	Run(ctx context.Context, entity string) (digest.Result, error)
}

/*
DigestServer exposes the query pipeline over HTTP. Responses carry the same
JSON object the command line prints.
*/
type DigestServer struct {
	app      *fiber.App
	digester Digester
	metrics  *metrics.DigestMetrics
	addr     string
}

type DigestServerOption func(*DigestServer)

func NewDigestServer(digester Digester, options ...DigestServerOption) *DigestServer {
	srv := &DigestServer{
		app: fiber.New(fiber.Config{
			AppName:      "herewego",
			ServerHeader: "herewego",
		}),
		digester: digester,
		metrics:  metrics.NewDigestMetrics(),
		addr:     ":3210",
	}

	for _, option := range options {
		option(srv)
	}

	srv.routes()

	return srv
}

func WithAddr(host string, port int) DigestServerOption {
	return func(srv *DigestServer) {
		srv.addr = fmt.Sprintf("%s:%d", host, port)
	}
}

func (srv *DigestServer) routes() {
	srv.app.Use(logger.New(logger.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/livez"
		},
	}))

	srv.app.Get("/livez", healthcheck.New())
	srv.app.Get("/digest", srv.handleDigest)
	srv.app.Get("/metrics", func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(srv.metrics.Snapshot())
	})
}

func (srv *DigestServer) Start() error {
	log.Info("serving digests", "addr", srv.addr)
	return srv.app.Listen(srv.addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (srv *DigestServer) Shutdown() error {
	return srv.app.Shutdown()
}

func (srv *DigestServer) handleDigest(ctx fiber.Ctx) error {
	entity := strings.TrimSpace(ctx.Query("entity"))

	if entity == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": NoEntityProvided})
	}

	started := time.Now()
	result, err := srv.digester.Run(ctx.RequestCtx(), entity)
	srv.metrics.Record(result.Empty(), err, time.Since(started))

	if err != nil {
		log.Error("digest failed", "entity", entity, "error", err)
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer

	if err := digest.Encode(&buf, result); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
