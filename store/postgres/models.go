package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
	"github.com/xraph/chainage/types"
)

// ==================== Target models ====================

type targetModel struct {
	grove.BaseModel `grove:"table:chainage_targets"`

	ID        string            `grove:"id,pk"`
	PackageID string            `grove:"package_id"`
	Name      string            `grove:"name"`
	LengthM   int64             `grove:"length_m"`
	Metadata  map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt time.Time         `grove:"created_at"`
	UpdatedAt time.Time         `grove:"updated_at"`
}

func toTargetModel(t *target.Target) *targetModel {
	return &targetModel{
		ID:        t.ID.String(),
		PackageID: t.PackageID,
		Name:      t.Name,
		LengthM:   t.Length.Meters(),
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromTargetModel(m *targetModel) (*target.Target, error) {
	targetID, err := id.ParseTargetID(m.ID)
	if err != nil {
		return nil, err
	}
	return &target.Target{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        targetID,
		PackageID: m.PackageID,
		Name:      m.Name,
		Length:    types.Meters(m.LengthM),
		Metadata:  m.Metadata,
	}, nil
}

// ==================== Progress entry models ====================

type entryModel struct {
	grove.BaseModel `grove:"table:chainage_progress_entries"`

	ID           string    `grove:"id,pk"`
	PackageID    string    `grove:"package_id"`
	StartM       int64     `grove:"start_m"`
	EndM         int64     `grove:"end_m"`
	EarthworkM   int64     `grove:"earthwork_m"`
	LiningM      int64     `grove:"lining_m"`
	ReportedDate time.Time `grove:"reported_date"`
	Kind         string    `grove:"kind"`
	Remarks      string    `grove:"remarks"`
	CreatedAt    time.Time `grove:"created_at"`
	UpdatedAt    time.Time `grove:"updated_at"`
}

func toEntryModel(e *progress.Entry) *entryModel {
	return &entryModel{
		ID:           e.ID.String(),
		PackageID:    e.PackageID,
		StartM:       e.Start.Meters(),
		EndM:         e.End.Meters(),
		EarthworkM:   e.Earthwork.Meters(),
		LiningM:      e.Lining.Meters(),
		ReportedDate: e.ReportedDate,
		Kind:         string(e.Kind),
		Remarks:      e.Remarks,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func fromEntryModel(m *entryModel) (*progress.Entry, error) {
	entryID, err := id.ParseEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	return &progress.Entry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:           entryID,
		PackageID:    m.PackageID,
		Start:        types.Meters(m.StartM),
		End:          types.Meters(m.EndM),
		Earthwork:    types.Meters(m.EarthworkM),
		Lining:       types.Meters(m.LiningM),
		ReportedDate: m.ReportedDate,
		Kind:         progress.Kind(m.Kind),
		Remarks:      m.Remarks,
	}, nil
}
