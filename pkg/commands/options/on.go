package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-3-3" or --on="3/3".`)
}

func (o *OnOptions) GetOn() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := ParseDay(o.OnString)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDay accepts a full or short date. A short date with no year
// means the next occurrence, not the previous one.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(time.Now().Year(), 0, 0)
		if t.Before(time.Now()) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t, nil
}
