// internal/models/models.go
// Package: models
package models

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	hostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	loadedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	modelStyle  = lipgloss.NewStyle()
)

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type psResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// List fetches the model tags available on the host and marks the ones
// currently loaded. The returned names are sorted; loaded is keyed by
// tag name.
func List(hostURL string) ([]string, map[string]bool, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	var tags tagsResponse
	if err := getJSON(client, hostURL+"/api/tags", &tags); err != nil {
		return nil, nil, err
	}

	loaded := map[string]bool{}
	var ps psResponse
	// A /api/ps failure only loses the "loaded" markers; the tag list
	// is still useful.
	if err := getJSON(client, hostURL+"/api/ps", &ps); err == nil {
		for _, m := range ps.Models {
			loaded[m.Name] = true
		}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)

	return names, loaded, nil
}

// PrintModels renders the host's model list to stdout, loaded models
// first.
func PrintModels(hostURL string) error {
	names, loaded, err := List(hostURL)
	if err != nil {
		return err
	}

	fmt.Println(hostStyle.Render(fmt.Sprintf("Models on %s:", hostURL)))
	for _, name := range names {
		if loaded[name] {
			fmt.Println("  " + loadedStyle.Render(name+" (loaded)"))
		}
	}
	for _, name := range names {
		if !loaded[name] {
			fmt.Println("  " + modelStyle.Render(name))
		}
	}
	if len(names) == 0 {
		fmt.Println("  (none)")
	}
	return nil
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("could not reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned non-200 status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
