package main

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yigit/nbadocs/internal/app/models"
)

var (
	good    = color.New(color.FgGreen).SprintFunc()
	partial = color.New(color.FgYellow).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
)

func scoreColor(pct int) func(a ...interface{}) string {
	switch {
	case pct >= 80:
		return good
	case pct >= 40:
		return partial
	default:
		return bad
	}
}

func renderReport(w io.Writer, report []models.CourseCompliance) {
	header := []string{"Code", "Course", "Faculty"}
	for _, t := range models.RequiredTypes {
		header = append(header, string(t))
	}
	header = append(header, "Compliance", "Files")

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)

	for _, entry := range report {
		row := []string{entry.Course.Code, entry.Course.Name, entry.Course.Faculty}
		for _, tc := range entry.Compliance {
			if tc.Present {
				row = append(row, good(strconv.Itoa(tc.Count)))
			} else {
				row = append(row, bad("-"))
			}
		}
		pct := strconv.Itoa(entry.CompliancePercentage) + "%"
		row = append(row, scoreColor(entry.CompliancePercentage)(pct), strconv.Itoa(entry.TotalFiles))
		table.Append(row)
	}

	table.Render()
}

// belowThreshold returns the entries scoring under minScore
func belowThreshold(report []models.CourseCompliance, minScore int) []models.CourseCompliance {
	var failing []models.CourseCompliance
	for _, entry := range report {
		if entry.CompliancePercentage < minScore {
			failing = append(failing, entry)
		}
	}
	return failing
}
