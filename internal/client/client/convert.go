package client

import (
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/api"
	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

func toAPIFields(f models.Fields) *api.RecordFields {
	return &api.RecordFields{
		Date:       f.OccurredOn.String(),
		LoggedAt:   f.LoggedAt,
		ScaleValue: f.ScaleValue,
		Count:      f.Count,
		Note:       f.Note,
	}
}

func fromAPIRecord(r *api.Record) (*models.Record, error) {
	if r == nil {
		return nil, fmt.Errorf("rpc error: empty record in response")
	}
	date, err := timex.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("rpc error: record %d: %w", r.ID, err)
	}
	return &models.Record{
		ServerID: r.ID,
		Fields: models.Fields{
			OccurredOn: date,
			LoggedAt:   r.LoggedAt.UTC(),
			ScaleValue: r.ScaleValue,
			Count:      r.Count,
			Note:       r.Note,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

func fromAPIRecords(in []*api.Record) ([]models.Record, error) {
	out := make([]models.Record, 0, len(in))
	for _, r := range in {
		rec, err := fromAPIRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}
