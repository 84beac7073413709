// Package api serves the import, report and export flow over HTTP.
package api

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/watspent/watspent/internal/buildinfo"
	"github.com/watspent/watspent/internal/importer"
	"github.com/watspent/watspent/internal/logging"
	"github.com/watspent/watspent/internal/model"
	"github.com/watspent/watspent/internal/session"
)

// maxBodySize bounds a pasted ledger or CSV upload.
const maxBodySize = 8 << 20

// ImportResponse is the JSON response from POST /api/import.
type ImportResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Format     string `json:"format,omitempty"`
	Count      int    `json:"count"`
	Generation string `json:"generation,omitempty"`
}

// Transaction is the JSON form of model.Transaction.
type Transaction struct {
	DateTime string          `json:"dateTime"`
	Type     string          `json:"type"`
	TypeCode string          `json:"typeCode"`
	Terminal string          `json:"terminal"`
	Location string          `json:"location"`
	Status   string          `json:"status"`
	Balance  decimal.Decimal `json:"balance"`
	Units    decimal.Decimal `json:"units"`
	Amount   decimal.Decimal `json:"amount"`
}

// TransactionsResponse is the JSON response from GET /api/transactions.
type TransactionsResponse struct {
	Count        int           `json:"count"`
	Generation   string        `json:"generation"`
	Transactions []Transaction `json:"transactions"`
}

// TerminalNameResponse is the JSON response from GET /api/terminals/:terminal/name.
type TerminalNameResponse struct {
	Terminal string `json:"terminal"`
	Name     string `json:"name"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Session *session.Session
	Log     logrus.FieldLogger
}

// NewApp returns a fiber app with every route registered.
func (h *Handler) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "watspent",
		BodyLimit:             maxBodySize,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          errorHandler,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", logging.Wrap("Health", h.Log, h.handleHealth))
	api.Post("/import", logging.Wrap("Import", h.Log, h.handleImport))
	api.Get("/transactions", logging.Wrap("Transactions", h.Log, h.handleTransactions))
	api.Get("/report", logging.Wrap("Report", h.Log, h.handleReport))
	api.Get("/export", logging.Wrap("Export", h.Log, h.handleExport))
	api.Get("/terminals/:terminal/name", logging.Wrap("TerminalName", h.Log, h.handleTerminalName))
}

func (h *Handler) handleHealth(c *fiber.Ctx, _ *logging.LogData) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *Handler) handleImport(c *fiber.Ctx, ld *logging.LogData) error {
	raw := string(c.Body())
	if strings.TrimSpace(raw) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please paste your WatCard transaction history first.")
	}
	format := c.Query("format")
	source := c.Get("X-Source", "api")
	ld.AddData("source", source)

	snap, err := h.Session.ImportFormat(source, format, raw)
	if err != nil {
		var perr *importer.ParseError
		if errors.As(err, &perr) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, perr.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	ld.AddData("count", snap.Len())

	if format == "" {
		format = importer.Detect(raw)
	}
	return c.JSON(ImportResponse{
		Success:    true,
		Format:     format,
		Count:      snap.Len(),
		Generation: snap.Generation.String(),
	})
}

func (h *Handler) handleTransactions(c *fiber.Ctx, ld *logging.LogData) error {
	snap := h.Session.Snapshot()
	ld.AddData("count", snap.Len())

	txns := make([]Transaction, 0, snap.Len())
	for _, txn := range snap.Transactions {
		txns = append(txns, toTransaction(txn))
	}
	return c.JSON(TransactionsResponse{
		Count:        len(txns),
		Generation:   snap.Generation.String(),
		Transactions: txns,
	})
}

func (h *Handler) handleReport(c *fiber.Ctx, _ *logging.LogData) error {
	return c.JSON(h.Session.Report())
}

func (h *Handler) handleExport(c *fiber.Ctx, ld *logging.LogData) error {
	var buf bytes.Buffer
	if err := h.Session.Export(&buf); err != nil {
		return err
	}
	name := h.Session.ExportFileName()
	ld.AddData("file", name)

	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) handleTerminalName(c *fiber.Ctx, _ *logging.LogData) error {
	terminal := c.Params("terminal")
	return c.JSON(TerminalNameResponse{
		Terminal: terminal,
		Name:     h.Session.TerminalName(terminal),
	})
}

func toTransaction(txn model.Transaction) Transaction {
	return Transaction{
		DateTime: txn.DateTime.Format("2006-01-02 15:04:05"),
		Type:     txn.Type,
		TypeCode: txn.TypeCode(),
		Terminal: txn.Terminal,
		Location: txn.Location(),
		Status:   txn.Status,
		Balance:  txn.Balance,
		Units:    txn.Units,
		Amount:   txn.Amount,
	}
}

// errorHandler renders every error as an ImportResponse-shaped JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(ImportResponse{
		Success: false,
		Error:   err.Error(),
	})
}
