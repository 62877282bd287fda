package contentmodel

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// FetchBuiltins posts names to endpoint (a batched lookup of built-in
// content-model schemas hosted alongside the GraphQL schema) and returns
// whatever schemas the server knows about. A request or decode failure is
// logged and tolerated: built-in schemas are an enrichment, not a
// requirement, so the command still succeeds using only local schema files.
func FetchBuiltins(ctx context.Context, client *http.Client, endpoint string, names []string) []Schema {
	body, err := json.Marshal(names)
	if err != nil {
		log.Warn().Err(err).Msg("encoding content model batch request")
		return nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("building content model batch request")
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("fetching built-in content model schemas failed, continuing without them")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("built-in content model fetch returned non-200, continuing without them")
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("reading built-in content model response")
		return nil
	}

	schemas, err := ParseSchemas(raw)
	if err != nil {
		log.Warn().Err(err).Msg("decoding built-in content model response")
		return nil
	}
	return schemas
}
