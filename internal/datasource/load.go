package datasource

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/jsonlens/pkg/metrics"
)

// FieldData bundles everything the viewer needs for one field of one record.
type FieldData struct {
	Value FieldValue
	Label string
}

// LoadField fetches the field text and its display label concurrently. The
// label lookup is cosmetic: when labels isn't a LabelSource, or the lookup
// fails alongside a successful fetch, the field name stands in. A fetch
// failure wins over everything and is reported as-is; retrying is the
// caller's policy, not this package's.
func LoadField(ctx context.Context, src RecordSource, recordID, field string) (FieldData, error) {
	defer metrics.Timer(metrics.FieldFetch)()

	data := FieldData{Label: field}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := src.FetchField(ctx, recordID, field)
		if err != nil {
			return err
		}
		data.Value = v
		return nil
	})
	if labels, ok := src.(LabelSource); ok {
		g.Go(func() error {
			label, err := labels.FieldLabel(ctx, field)
			if err == nil && label != "" {
				data.Label = label
			}
			// Label failures never fail the load.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return FieldData{Label: field}, err
	}
	return data, nil
}
