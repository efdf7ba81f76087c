package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// readDashboard loads a dashboard from path, or from stdin when path is
// empty or "-". The file may hold a dashboard object or a bare JSON array of
// rectangles; rectangles become untitled line widgets.
func readDashboard(path string, stdin io.Reader) (*dashboard.Dashboard, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout input is empty")
	}

	if trimmed[0] == '[' {
		var rects []grid.Rect
		if err := json.Unmarshal(trimmed, &rects); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
		}
		d := &dashboard.Dashboard{Widgets: make([]dashboard.Widget, len(rects))}
		for i := range rects {
			d.Widgets[i] = dashboard.Widget{
				Title:       "widget " + strconv.Itoa(i+1),
				DisplayType: dashboard.DisplayLine,
				Layout:      &rects[i],
			}
		}
		return d, nil
	}

	var d dashboard.Dashboard
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dashboard")
	}
	return &d, nil
}

// parseDepths parses "0,0,1,1,0,0".
func parseDepths(s string) (grid.Depths, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "depths are required")
	}
	fields := strings.Split(s, ",")
	out := make(grid.Depths, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "depth %d", i)
		}
		out[i] = v
	}
	return out, nil
}
