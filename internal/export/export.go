// Package export writes transcript history to a spreadsheet.
package export

import (
	"fmt"
	"strconv"

	"github.com/tealeg/xlsx"

	"audioscribe/internal/model"
)

// ToExcel writes the transcripts to an xlsx file at outputFilePath.
func ToExcel(transcripts []model.Transcript, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Audio Name"
	headerRow.AddCell().Value = "Transcription"

	for _, t := range transcripts {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.Itoa(t.ID)
		row.AddCell().Value = t.AudioName
		row.AddCell().Value = t.Transcription
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
