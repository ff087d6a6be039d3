package telemetry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
)

// Seed registers the boxes listed in a ';' separated file with the header
// id;location;status. Boxes that already exist are left untouched.
func Seed(ctx context.Context, s Store, boxesFile io.Reader) error {
	log := logging.GetFromContext(ctx)

	r := csv.NewReader(boxesFile)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv data from file: %w", err)
	}

	seen := map[string]bool{}
	created := 0

	for idx, row := range rows {
		if idx == 0 {
			continue
		}

		if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
			return fmt.Errorf("missing box id on line %d in boxes file", idx+1)
		}

		boxID := strings.TrimSpace(row[0])
		if seen[boxID] {
			return fmt.Errorf("duplicate box id %s found on line %d in boxes file", boxID, idx+1)
		}
		seen[boxID] = true

		location := ""
		if len(row) > 1 {
			location = strings.TrimSpace(row[1])
		}

		status := StatusActive
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			status = strings.ToLower(strings.TrimSpace(row[2]))
		}
		if status != StatusActive && status != StatusInactive {
			return fmt.Errorf("bad status specified for box %s on line %d (%q not in [%s %s])", boxID, idx+1, status, StatusActive, StatusInactive)
		}

		_, err := s.RegisterBox(ctx, boxID, location)
		if errors.Is(err, ErrBoxAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}

		if status != StatusActive {
			if _, err = s.UpdateBox(ctx, boxID, nil, &status); err != nil {
				return err
			}
		}

		created++
	}

	log.Info().Msgf("loaded %d boxes from seed file", created)

	return nil
}
