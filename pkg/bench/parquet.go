package bench

import (
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// AttemptRecord is the flat parquet row for one scenario attempt.
// Columnar output makes cross-run analysis cheap without re-parsing
// the JSON conversation logs.
type AttemptRecord struct {
	Provider           string  `parquet:"name=provider, type=BYTE_ARRAY, convertedtype=UTF8"`
	Model              string  `parquet:"name=model, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp          string  `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	Size               int32   `parquet:"name=size, type=INT32"`
	Moves              int32   `parquet:"name=moves, type=INT32"`
	Solved             bool    `parquet:"name=solved, type=BOOLEAN"`
	Reason             string  `parquet:"name=reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	APICalls           int32   `parquet:"name=api_calls, type=INT32"`
	TimeSpent          float64 `parquet:"name=time_spent, type=DOUBLE"`
	TotalTokens        int32   `parquet:"name=total_tokens, type=INT32"`
	Cost               float64 `parquet:"name=cost, type=DOUBLE"`
	Predictions        int32   `parquet:"name=predictions, type=INT32"`
	PredictionsCorrect int32   `parquet:"name=predictions_correct, type=INT32"`
}

// RecordFromAttempt converts a log attempt to its parquet row.
func RecordFromAttempt(providerName, model, timestamp string, a Attempt) AttemptRecord {
	return AttemptRecord{
		Provider:           providerName,
		Model:              model,
		Timestamp:          timestamp,
		Size:               int32(a.Size),
		Moves:              int32(a.Moves),
		Solved:             a.Solved,
		Reason:             a.Reason,
		APICalls:           int32(a.APICallsMade),
		TimeSpent:          a.TimeSpent,
		TotalTokens:        int32(a.TotalTokens),
		Cost:               a.Cost,
		Predictions:        int32(a.Predictions),
		PredictionsCorrect: int32(a.PredictionsCorrect),
	}
}

// WriteAttempts writes attempt records to a parquet file with snappy
// compression.
func WriteAttempts(path string, records []AttemptRecord) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(AttemptRecord), 4)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	return fileWriter.Close()
}

// ReadAttempts loads all attempt records from a parquet file.
func ReadAttempts(path string) ([]AttemptRecord, error) {
	absPath := path
	if !filepath.IsAbs(path) {
		if resolved, err := filepath.Abs(path); err == nil {
			absPath = resolved
		}
	}
	fileReader, err := local.NewLocalFileReader(absPath)
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(AttemptRecord), 4)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	records := make([]AttemptRecord, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		remain := num - offset
		if remain < batchSize {
			batchSize = remain
		}
		batch := make([]AttemptRecord, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return records, nil
}
