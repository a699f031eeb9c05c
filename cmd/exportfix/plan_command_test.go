package main

import (
	"encoding/json"
	"testing"

	"exportfix/internal/renameplan"
)

func TestPlanCommandListsRenames(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)
	fixture := writeFixtureZip(t, dir)

	stdout, _, err := runCLI(t, []string{"plan", fixture}, configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	requireContains(t, stdout, "Original\tFinal")
	requireContains(t, stdout, "Notes "+testID+".md\tNotes.md")
	requireContains(t, stdout, "Sub "+testID+"/Page "+testID+".md\tSub/Page.md")
}

func TestPlanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)
	fixture := writeFixtureZip(t, dir)

	stdout, _, err := runCLI(t, []string{"plan", fixture, "--json", "--all"}, configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	var pairs []renameplan.Pair
	if err := json.Unmarshal([]byte(stdout), &pairs); err != nil {
		t.Fatalf("decode pairs: %v\noutput: %s", err, stdout)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d: %+v", len(pairs), pairs)
	}
	found := false
	for _, p := range pairs {
		if p.Original == "Sub "+testID+"/data.bin" {
			found = true
			if p.Final != "Sub/data.bin" {
				t.Fatalf("data.bin mapped to %q", p.Final)
			}
		}
	}
	if !found {
		t.Fatalf("data.bin missing from pairs: %+v", pairs)
	}
}

func TestPlanCommandMoveIndexFlag(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	input := t.TempDir()
	writeTree(t, input, map[string]string{
		"Page " + testID + ".md":                      "[child](Page%20" + testID + "/Child%20" + testID + ".md)\n",
		"Page " + testID + "/Child " + testID + ".md": "body\n",
	})

	// Default: the page markdown nests into its same-named folder.
	stdout, _, err := runCLI(t, []string{"plan", input}, configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, stdout, "Page "+testID+".md\tPage/!index.md")

	// Opt-out keeps it beside the folder.
	stdout, _, err = runCLI(t, []string{"plan", input, "--no-move-index"}, configPath)
	if err != nil {
		t.Fatalf("plan --no-move-index: %v", err)
	}
	requireContains(t, stdout, "Page "+testID+".md\tPage.md")
}

func TestPlanCommandNothingToRename(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	clean := t.TempDir()
	writeTree(t, clean, map[string]string{
		"Notes.md": "plain\n",
	})

	stdout, _, err := runCLI(t, []string{"plan", clean}, configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, stdout, "Nothing to rename")
}
