// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"codeberg.org/heiditips/heiditips/core/tips"
	"codeberg.org/heiditips/heiditips/server/utils"
)

// TipRoutes serves a tip collection.
type TipRoutes struct {
	Collection *tips.Collection
}

// Table handles GET /api/tips and writes the whole table as JSON.
func (h TipRoutes) Table(w http.ResponseWriter, r *http.Request) error {
	return writeTable(w, h.Collection, tips.FormatJSON, "application/json; charset=utf-8")
}

// TableYAML handles GET /api/tips.yaml.
func (h TipRoutes) TableYAML(w http.ResponseWriter, r *http.Request) error {
	return writeTable(w, h.Collection, tips.FormatYAML, "application/yaml; charset=utf-8")
}

func writeTable(w http.ResponseWriter, c *tips.Collection, format tips.Format, contentType string) error {
	var buf bytes.Buffer

	if err := tips.Encode(&buf, c, format); err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write tip table: %w", err)
	}

	return nil
}

// Contexts handles GET /api/contexts.
func (h TipRoutes) Contexts(w http.ResponseWriter, r *http.Request) error {
	return utils.WriteJSON(w, http.StatusOK, h.Collection.Keys())
}

// Context handles GET /api/tips/{context}.
//
// An unknown context is answered with an empty list.
func (h TipRoutes) Context(w http.ResponseWriter, r *http.Request) error {
	seq := h.Collection.Lookup(utils.GetPathVar(r, "context"))
	if seq == nil {
		seq = []tips.Tip{}
	}

	return utils.WriteJSON(w, http.StatusOK, seq)
}

// Rotate handles GET /api/tips/{context}/{step} and writes the single tip a
// rotating display shows at that step.
//
// An unknown context is answered with 204 No Content.
func (h TipRoutes) Rotate(w http.ResponseWriter, r *http.Request) error {
	rawStep := utils.GetPathVar(r, "step")

	step, err := strconv.Atoi(rawStep)
	if err != nil {
		return utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":  fmt.Sprintf("step must be an integer, got %q", rawStep),
			"status": http.StatusBadRequest,
		})
	}

	tip, ok := h.Collection.Nth(utils.GetPathVar(r, "context"), step)
	if !ok {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	return utils.WriteJSON(w, http.StatusOK, tip)
}
