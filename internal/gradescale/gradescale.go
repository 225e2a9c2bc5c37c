// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package gradescale generates the grade-percentage table for an
// assignment's total point value.
package gradescale

import (
	"errors"
	"math"
)

// ErrBadTotal rejects totals that are not positive whole numbers.
var ErrBadTotal = errors.New("gradescale: total points must be a positive whole number")

// Row is one line of the table: a raw score out of the total and its
// rounded percentage.
type Row struct {
	Score   int `json:"score"`
	Total   int `json:"total"`
	Percent int `json:"pct"`
}

// maxTotal keeps a typo like an extra digit from generating a giant table.
const maxTotal = 1000

// Generate returns the scale for a total, from a perfect score down to
// zero.
func Generate(total int) ([]Row, error) {
	if total <= 0 || total > maxTotal {
		return nil, ErrBadTotal
	}
	rows := make([]Row, 0, total+1)
	for score := total; score >= 0; score-- {
		pct := int(math.Round(float64(score) / float64(total) * 100))
		rows = append(rows, Row{Score: score, Total: total, Percent: pct})
	}
	return rows, nil
}
