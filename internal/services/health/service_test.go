package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestCheck(t *testing.T) {
	cases := []struct {
		name string
		svc  *Service
		want Status
	}{
		{"memory", NewService(nil), Status{OK: true, Database: "memory"}},
		{"up", NewService(fakePinger{}), Status{OK: true, Database: "up"}},
		{"down", NewService(fakePinger{err: errors.New("refused")}), Status{OK: false, Database: "down"}},
	}
	for _, tc := range cases {
		if got := tc.svc.Check(context.Background()); got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}
