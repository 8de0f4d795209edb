package report

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	apperrors "github.com/yanqian/ethix-logistics/pkg/errors"
	"github.com/yanqian/ethix-logistics/pkg/util"
)

// Source yields the shipments reports are computed over.
type Source interface {
	Shipments() []storefront.Shipment
}

// Export is a rendered CSV report.
type Export struct {
	Filename string
	Content  []byte
}

// Service exposes the admin views over persisted shipments.
type Service interface {
	Dashboard(ctx context.Context) Dashboard
	Counterfactual(ctx context.Context) Counterfactual
	ExportCSV(ctx context.Context) (Export, error)
}

type service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService is a wire provider for the report domain.
func NewService(source Source, logger *slog.Logger) Service {
	return &service{source: source, logger: logger.With("component", "report.service"), now: util.NowUTC}
}

func (s *service) Dashboard(context.Context) Dashboard {
	return Summarize(s.source.Shipments())
}

func (s *service) Counterfactual(context.Context) Counterfactual {
	return Simulate(s.source.Shipments())
}

func (s *service) ExportCSV(context.Context) (Export, error) {
	shipments := s.source.Shipments()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, shipments); err != nil {
		return Export{}, apperrors.Wrap(apperrors.CodeStorage, "failed to render report", err)
	}
	name := Filename(s.now())
	s.logger.Info("report exported", "file", name, "rows", len(shipments))
	return Export{Filename: name, Content: buf.Bytes()}, nil
}
