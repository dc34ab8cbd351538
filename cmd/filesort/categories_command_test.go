package main

import (
	"encoding/json"
	"testing"

	"filesort/internal/category"
	"filesort/internal/config"
	"filesort/internal/testsupport"
)

func TestCategoriesCommandDefaultTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"categories"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "Images")
	requireContains(t, out, ".jpg .jpeg .png .gif .bmp")
	requireContains(t, out, "(everything else)")

	out, _, err = runCLI(t, []string{"categories", "--extensions"}, env.configPath)
	if err != nil {
		t.Fatalf("categories --extensions: %v", err)
	}
	requireContains(t, out, ".7z .aac .avi")
}

func TestCategoriesCommandInlineConfigJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCategories(
		config.Category{Name: "Raw", Extensions: []string{".cr2", ".nef"}},
		config.Category{Name: "Photos", Extensions: []string{".jpg"}},
	))

	out, _, err := runCLI(t, []string{"categories", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("categories --json: %v", err)
	}
	var rules []category.Rule
	if err := json.Unmarshal([]byte(out), &rules); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rules) != 3 || rules[0].Name != "Raw" || rules[2].Name != "Others" {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}
