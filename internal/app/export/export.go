// Package export writes transcripts to Excel workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/transcript"
)

// TranscriptToExcel writes one sheet with a row per merged segment and a
// summary sheet describing the job.
func TranscriptToExcel(view *pipeline.TranscriptView, outputFilePath string) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Segments")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Timestamp"
	headerRow.AddCell().Value = "Start (s)"
	headerRow.AddCell().Value = "End (s)"
	headerRow.AddCell().Value = "Speaker"
	headerRow.AddCell().Value = "Text"

	for _, seg := range view.TranscriptJSON {
		row := sheet.AddRow()
		row.AddCell().Value = transcript.FormatTimestamp(seg.Start)
		row.AddCell().SetFloatWithFormat(seg.Start, "0.00")
		row.AddCell().SetFloatWithFormat(seg.End, "0.00")
		row.AddCell().Value = seg.Speaker
		row.AddCell().Value = seg.Text
	}

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return err
	}
	addPair(summary, "ID", fmt.Sprint(view.ID))
	addPair(summary, "File", view.Filename)
	addPair(summary, "Language", view.DetectedLanguage)
	addPair(summary, "Speakers", optionalInt(view.SpeakerCount))
	addPair(summary, "Duration (s)", optionalFloat(view.DurationSeconds))
	addPair(summary, "Created", view.CreatedAt.Format(time.RFC3339))
	if view.CompletedAt != nil {
		addPair(summary, "Completed", view.CompletedAt.Format(time.RFC3339))
	}

	return file.Save(outputFilePath)
}

// JobsToExcel writes one row per job
func JobsToExcel(jobs []model.TranscriptionJob, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcripts")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "User"
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Status"
	headerRow.AddCell().Value = "Created"
	headerRow.AddCell().Value = "Speakers"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Error Message"

	for _, j := range jobs {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(j.ID)
		row.AddCell().Value = j.UserEmail
		row.AddCell().Value = j.OriginalFilename
		row.AddCell().Value = string(j.Status)
		row.AddCell().Value = j.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = optionalInt(j.SpeakerCount)
		row.AddCell().Value = optionalFloat(j.DurationSeconds)
		row.AddCell().Value = j.Error()
	}

	return file.Save(outputFilePath)
}

func addPair(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().Value = value
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}
