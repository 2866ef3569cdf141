package aggregator

import (
	"context"
	"fmt"
	"strings"

	"github.com/s0up4200/overseerr-mcp/plainval"
)

const (
	availableHeader   = "\n---\nOverseerr is available and these are the status data:\n"
	unavailableHeader = "\n---\nOverseerr is not available and below is the request error: \n"
)

// StatusReport fetches the server status and renders it as a text
// report. It never fails: a payload carrying a version key renders the
// available variant, anything else (error payloads, unreachable
// upstream, non-mapping values) renders the unavailable one.
func (o *Operations) StatusReport(ctx context.Context) string {
	data, err := o.fetchStatus(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Status fetch failed")
		data = err.Error()
	}

	var b strings.Builder
	if m, ok := data.(*plainval.Map); ok {
		if m.Has("version") {
			b.WriteString(availableHeader)
		} else {
			b.WriteString(unavailableHeader)
		}
		writePairs(&b, m)
	} else {
		b.WriteString(unavailableHeader)
		fmt.Fprintf(&b, "\n- %v", data)
	}
	b.WriteByte('\n')
	return b.String()
}

func (o *Operations) fetchStatus(ctx context.Context) (any, error) {
	client, err := o.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.GetStatus(ctx)
}

func writePairs(b *strings.Builder, m *plainval.Map) {
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		fmt.Fprintf(b, "\n- %s: %v", key, value)
	}
}
