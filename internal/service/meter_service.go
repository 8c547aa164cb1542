package service

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/meter"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/shopspring/decimal"
)

// ReadingInput reúne os dados de uma leitura de medidor
type ReadingInput struct {
	ApartmentID     string
	MeterType       string
	CurrentReading  decimal.Decimal
	PreviousReading *decimal.Decimal
	// ReadingDate zero usa a data do servidor
	ReadingDate time.Time
}

// MeterService registra leituras de medidores
type MeterService struct {
	base
	locator
	meters meter.Repository
}

// NewMeterService cria uma nova instância de MeterService
func NewMeterService(blocks block.Repository, apartments apartment.Repository, meters meter.Repository, opts ...Option) *MeterService {
	return &MeterService{
		base:    newBase(opts),
		locator: locator{blocks: blocks, apartments: apartments},
		meters:  meters,
	}
}

// Record grava uma leitura; o consumo é derivado da leitura anterior informada
func (s *MeterService) Record(ctx context.Context, p auth.Principal, in ReadingInput) (*meter.Reading, error) {
	meterType, err := meter.ParseType(in.MeterType)
	if err != nil {
		return nil, err
	}
	_, res, err := s.apartment(ctx, in.ApartmentID, true)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanActAsOwner(p, res)); err != nil {
		return nil, err
	}

	readingDate := in.ReadingDate
	if readingDate.IsZero() {
		readingDate = s.now()
	}
	r, err := meter.NewReading(in.ApartmentID, meterType, in.CurrentReading, in.PreviousReading, readingDate, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.meters.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.meters.FindByID(ctx, r.ID)
}

// Latest retorna a última leitura de um medidor do apartamento, usada para
// preencher a leitura anterior do próximo registro
func (s *MeterService) Latest(ctx context.Context, p auth.Principal, apartmentID, meterTypeName string) (*meter.Reading, error) {
	meterType, err := meter.ParseType(meterTypeName)
	if err != nil {
		return nil, err
	}
	_, res, err := s.apartment(ctx, apartmentID, true)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, res)); err != nil {
		return nil, err
	}
	return s.meters.FindLatest(ctx, apartmentID, meterType)
}

// List retorna as leituras visíveis; apartmentID e meterType são opcionais
func (s *MeterService) List(ctx context.Context, p auth.Principal, apartmentID, meterTypeName string) ([]*meter.Reading, error) {
	f := meter.Filter{}
	if meterTypeName != "" {
		meterType, err := meter.ParseType(meterTypeName)
		if err != nil {
			return nil, err
		}
		f.MeterType = meterType
	}

	if apartmentID != "" {
		_, res, err := s.apartment(ctx, apartmentID, true)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		f.ApartmentID = apartmentID
		return s.meters.List(ctx, f)
	}

	scope, ok := policy.ListScope(p, true)
	if !ok {
		return []*meter.Reading{}, nil
	}
	f.AssociationID = scope.AssociationID
	f.BlockID = scope.BlockID
	f.OwnerID = scope.OwnerID
	return s.meters.List(ctx, f)
}
