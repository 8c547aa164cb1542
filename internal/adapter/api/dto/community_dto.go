package dto

import (
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/domain/meter"
	"github.com/hugohenrick/erp-condominio/internal/domain/repair"
	"github.com/shopspring/decimal"
)

// MeterReadingRequest representa uma leitura de medidor. readingDate vazio
// usa a data do servidor.
type MeterReadingRequest struct {
	ApartmentID     string           `json:"apartmentId" binding:"required"`
	MeterType       string           `json:"meterType" binding:"required"`
	CurrentReading  decimal.Decimal  `json:"currentReading"`
	PreviousReading *decimal.Decimal `json:"previousReading"`
	ReadingDate     string           `json:"readingDate"`
}

// MeterReadingResponse representa uma leitura registrada
type MeterReadingResponse struct {
	ID              string           `json:"id"`
	ApartmentID     string           `json:"apartmentId"`
	ApartmentNumber string           `json:"apartmentNumber,omitempty"`
	MeterType       string           `json:"meterType"`
	CurrentReading  decimal.Decimal  `json:"currentReading"`
	PreviousReading *decimal.Decimal `json:"previousReading"`
	Consumption     *decimal.Decimal `json:"consumption"`
	ReadingDate     time.Time        `json:"readingDate"`
}

// AnnouncementRequest representa um novo anúncio
type AnnouncementRequest struct {
	BlockID  string `json:"blockId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority"`
}

// AnnouncementResponse representa um anúncio
type AnnouncementResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	BlockID    string    `json:"blockId"`
	BlockName  string    `json:"blockName,omitempty"`
	Priority   string    `json:"priority"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RepairRequestCreate representa a abertura de um pedido de reparo
type RepairRequestCreate struct {
	ApartmentID string `json:"apartmentId" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Priority    string `json:"priority"`
}

// RepairRequestUpdate representa a alteração de um pedido; campos vazios são mantidos
type RepairRequestUpdate struct {
	Description string `json:"description"`
	Location    string `json:"location"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// RepairRequestResponse representa um pedido de reparo
type RepairRequestResponse struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	ApartmentID     string    `json:"apartmentId"`
	ApartmentNumber string    `json:"apartmentNumber,omitempty"`
	BlockID         string    `json:"blockId"`
	TenantID        string    `json:"tenantId"`
	TenantName      string    `json:"tenantName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToMeterReadingResponse converte uma leitura do domínio para DTO de resposta
func ToMeterReadingResponse(r *meter.Reading) MeterReadingResponse {
	return MeterReadingResponse{
		ID:              r.ID,
		ApartmentID:     r.ApartmentID,
		ApartmentNumber: r.ApartmentNumber,
		MeterType:       string(r.MeterType),
		CurrentReading:  r.CurrentReading,
		PreviousReading: r.PreviousReading,
		Consumption:     r.Consumption,
		ReadingDate:     r.ReadingDate,
	}
}

// ToMeterReadingResponses converte uma lista de leituras
func ToMeterReadingResponses(list []*meter.Reading) []MeterReadingResponse {
	data := make([]MeterReadingResponse, len(list))
	for i, r := range list {
		data[i] = ToMeterReadingResponse(r)
	}
	return data
}

// ToAnnouncementResponse converte um anúncio do domínio para DTO de resposta
func ToAnnouncementResponse(a *announcement.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		BlockID:    a.BlockID,
		BlockName:  a.BlockName,
		Priority:   string(a.Priority),
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt,
	}
}

// ToAnnouncementResponses converte uma lista de anúncios
func ToAnnouncementResponses(list []*announcement.Announcement) []AnnouncementResponse {
	data := make([]AnnouncementResponse, len(list))
	for i, a := range list {
		data[i] = ToAnnouncementResponse(a)
	}
	return data
}

// ToRepairRequestResponse converte um pedido do domínio para DTO de resposta
func ToRepairRequestResponse(r *repair.Request) RepairRequestResponse {
	return RepairRequestResponse{
		ID:              r.ID,
		Description:     r.Description,
		Location:        r.Location,
		Priority:        string(r.Priority),
		Status:          string(r.Status),
		ApartmentID:     r.ApartmentID,
		ApartmentNumber: r.ApartmentNumber,
		BlockID:         r.BlockID,
		TenantID:        r.TenantID,
		TenantName:      r.TenantName,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToRepairRequestResponses converte uma lista de pedidos
func ToRepairRequestResponses(list []*repair.Request) []RepairRequestResponse {
	data := make([]RepairRequestResponse, len(list))
	for i, r := range list {
		data[i] = ToRepairRequestResponse(r)
	}
	return data
}
