package token

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	aohttp "github.com/martonlederer/ao-tokens/internal/http"
)

const (
	// DefaultComputeUnitURL is the public AO testnet compute unit.
	DefaultComputeUnitURL = "https://cu.ao-testnet.xyz"

	// maxDenomination bounds the denomination a token may report.
	maxDenomination = 255

	tagAction       = "Action"
	tagDenomination = "Denomination"
	tagName         = "Name"
	tagTicker       = "Ticker"
)

var errNilClient = errors.New("http client is nil")

// DryRunDetailsService implements DetailsService by dry-running an "Info"
// message against the token process on an AO compute unit.
type DryRunDetailsService struct {
	doer  aohttp.Doer
	cuURL string
}

// NewDryRunDetailsService returns a DetailsService that uses the provided HTTP client
// and compute unit URL to evaluate dry-run messages.
func NewDryRunDetailsService(client aohttp.Doer, cuURL string) *DryRunDetailsService {
	return &DryRunDetailsService{doer: client, cuURL: cuURL}
}

type dryRunTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type dryRunRequest struct {
	ID     string      `json:"Id"`
	Target string      `json:"Target"`
	Owner  string      `json:"Owner"`
	Anchor string      `json:"Anchor"`
	Data   string      `json:"Data"`
	Tags   []dryRunTag `json:"Tags"`
}

type dryRunMessage struct {
	Tags []dryRunTag `json:"Tags"`
}

type dryRunResponse struct {
	Messages []dryRunMessage `json:"Messages"`
	Error    json.RawMessage `json:"Error,omitempty"`
}

// GetTokenDetails sends an "Info" dry-run to the token process and reads the
// Name, Ticker and Denomination tags of the reply. If no reply carries a
// Denomination tag, it returns (nil, nil).
func (s *DryRunDetailsService) GetTokenDetails(
	ctx context.Context,
	processID string,
) (*Details, error) {
	if s.doer == nil {
		return nil, errNilClient
	}

	reqURL, err := url.Parse(s.cuURL)
	if err != nil {
		return nil, fmt.Errorf("parse compute unit URL '%s': %w", s.cuURL, err)
	}
	reqURL = reqURL.JoinPath("dry-run")
	q := reqURL.Query()
	q.Set("process-id", processID)
	reqURL.RawQuery = q.Encode()

	reqBody := dryRunRequest{
		ID:     "1234",
		Target: processID,
		Owner:  "1234",
		Anchor: "0",
		Data:   "1234",
		Tags: []dryRunTag{
			{Name: tagAction, Value: "Info"},
			{Name: "Data-Protocol", Value: "ao"},
			{Name: "Type", Value: "Message"},
			{Name: "Variant", Value: "ao.TN.1"},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal dry-run request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("compute unit returned status %d", resp.StatusCode)
	}

	var dryRunResp dryRunResponse
	if err := json.NewDecoder(resp.Body).Decode(&dryRunResp); err != nil {
		return nil, fmt.Errorf("decode dry-run response: %w", err)
	}

	if len(dryRunResp.Error) > 0 && string(dryRunResp.Error) != "null" && string(dryRunResp.Error) != `""` {
		return nil, fmt.Errorf("dry-run error: %s", dryRunResp.Error)
	}

	for _, msg := range dryRunResp.Messages {
		tags := make(map[string]string, len(msg.Tags))
		for _, tag := range msg.Tags {
			tags[tag.Name] = tag.Value
		}

		rawDenomination, hasDenomination := tags[tagDenomination]
		if !hasDenomination {
			continue
		}

		denomination, err := strconv.ParseUint(rawDenomination, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse denomination '%s': %w", rawDenomination, err)
		}
		if denomination > maxDenomination {
			return nil, fmt.Errorf("denomination value too large: %d", denomination)
		}

		return &Details{
			ProcessID: processID,
			Name:      tags[tagName],
			Ticker:    tags[tagTicker],
			Decimals:  uint(denomination),
		}, nil
	}

	slog.DebugContext(
		ctx,
		fmt.Sprintf(
			"None of the %d messages returned for process '%s' carry a denomination; returning nil for the token details",
			len(dryRunResp.Messages),
			processID,
		),
	)

	return nil, nil
}
