package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hyperjump/shirabe/internal/cli"
	"github.com/hyperjump/shirabe/internal/models"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := &models.SearchQuery{
		Directory: c.Dir,
		Query:     buildSearchQuery(c.Query),
		Mode:      models.Mode(c.Mode),
		Limit:     c.Limit,
		MinScore:  c.MinScore,
	}
	if query.Mode == "" {
		query.Mode = models.Mode(deps.Config.Scan.Mode)
	}

	var response *models.SearchResponse
	var err error
	if c.Server != "" {
		if abs, absErr := filepath.Abs(query.Directory); absErr == nil {
			query.Directory = abs
		}
		response, err = searchViaHTTP(deps.Ctx, c.Server, query)
	} else {
		response, err = deps.Engine.Search(deps.Ctx, query)
	}
	if err != nil {
		return err
	}
	return cli.WriteSearchResults(deps.Stdout, response, cli.OutputFormat(c.Output))
}

// buildSearchQuery joins positional args into a single query string.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func searchViaHTTP(ctx context.Context, serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(serverURL, "/")+"/api/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}
