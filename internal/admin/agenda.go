package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// AgendaForm is the editable state of the agenda form.
type AgendaForm struct {
	ID          int64 // 0 creates a new item
	Title       string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Location    string
	Description string
}

// AgendaFormFrom loads an existing item into a form.
func AgendaFormFrom(item domain.AgendaItem) AgendaForm {
	date := strings.TrimSpace(item.Date)
	if len(date) > len(domain.DateLayout) {
		date = date[:len(domain.DateLayout)]
	}
	return AgendaForm{
		ID:          int64(item.ID),
		Title:       item.Title,
		Date:        date,
		Time:        present.FormatTime(item.Time),
		Location:    item.Location,
		Description: item.Description,
	}
}

// Validate requires every field and checks the date and time formats.
func (f *AgendaForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return invalid("title", "Judul agenda wajib diisi")
	}
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(f.Date)); err != nil {
		return invalid("date", "Tanggal harus berformat YYYY-MM-DD")
	}
	if _, err := time.Parse(domain.TimeLayout, present.FormatTime(f.Time)); err != nil {
		return invalid("time", "Waktu harus berformat HH:MM")
	}
	if strings.TrimSpace(f.Location) == "" {
		return invalid("location", "Lokasi wajib diisi")
	}
	if strings.TrimSpace(f.Description) == "" {
		return invalid("description", "Deskripsi wajib diisi")
	}
	return nil
}

// Item converts the form to the API shape.
func (f *AgendaForm) Item() domain.AgendaItem {
	return domain.AgendaItem{
		ID:          domain.FlexInt(f.ID),
		Title:       strings.TrimSpace(f.Title),
		Date:        strings.TrimSpace(f.Date),
		Time:        present.FormatTime(f.Time),
		Location:    strings.TrimSpace(f.Location),
		Description: strings.TrimSpace(f.Description),
	}
}

// AgendaAPI is the part of the API client the agenda form uses.
type AgendaAPI interface {
	CreateAgenda(ctx context.Context, item domain.AgendaItem) error
	UpdateAgenda(ctx context.Context, id int64, item domain.AgendaItem) error
	DeleteAgenda(ctx context.Context, id int64) error
}

// Agenda runs agenda submissions.
type Agenda struct {
	api    AgendaAPI
	logger *zap.Logger
}

// NewAgenda creates the agenda workflow.
func NewAgenda(api AgendaAPI, logger *zap.Logger) *Agenda {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agenda{api: api, logger: logger}
}

// Save validates and creates or updates the item.
func (w *Agenda) Save(ctx context.Context, form AgendaForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	item := form.Item()
	if form.ID == 0 {
		if err := w.api.CreateAgenda(ctx, item); err != nil {
			return fmt.Errorf("save agenda: %w", err)
		}
	} else if err := w.api.UpdateAgenda(ctx, form.ID, item); err != nil {
		return fmt.Errorf("save agenda: %w", err)
	}
	w.logger.Info("agenda saved", zap.Int64("id", form.ID), zap.String("date", item.Date))
	return nil
}

// Delete removes an agenda item.
func (w *Agenda) Delete(ctx context.Context, id int64) error {
	if err := w.api.DeleteAgenda(ctx, id); err != nil {
		return fmt.Errorf("delete agenda: %w", err)
	}
	w.logger.Info("agenda deleted", zap.Int64("id", id))
	return nil
}
