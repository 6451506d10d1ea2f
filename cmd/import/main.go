// Command import loads questions for one subject from an xlsx file.
// Re-importing a subject replaces its question set.
//
//	import <subject> <file.xlsx> [durationInMinutes]
//
// Expected columns: question, option1..option4, answer (A-D or 1-4).
package main

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"textbook_backend/config"
	"textbook_backend/database"
	"textbook_backend/internal/logger"
	"textbook_backend/internal/model"
	"textbook_backend/internal/repository"
)

var answerIndex = map[string]int{
	"A": 0, "B": 1, "C": 2, "D": 3,
	"1": 0, "2": 1, "3": 2, "4": 3,
}

func main() {
	logger.Init()

	if len(os.Args) < 3 {
		log.Fatal().Msg("usage: import <subject> <file.xlsx> [durationInMinutes]")
	}
	subject := strings.ToLower(strings.TrimSpace(os.Args[1]))
	path := os.Args[2]
	duration := 60
	if len(os.Args) > 3 {
		d, err := strconv.Atoi(os.Args[3])
		if err != nil || d <= 0 {
			log.Fatal().Str("duration", os.Args[3]).Msg("Duration must be a positive number of minutes")
		}
		duration = d
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	questions, err := readQuestions(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read question file")
	}
	if len(questions) == 0 {
		log.Fatal().Str("file", path).Msg("No importable questions found")
	}
	log.Info().Int("count", len(questions)).Str("subject", subject).Msg("Questions parsed")

	testRepo := repository.NewTestRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	test, err := testRepo.FindBySubject(subject)
	switch {
	case err == nil:
		// Replace the existing question set.
		if err := questionRepo.DeleteByTestID(test.ID); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear existing questions")
		}
		test.Duration = duration
		if err := testRepo.Save(test); err != nil {
			log.Fatal().Err(err).Msg("Failed to update test")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		test = &model.Test{Subject: subject, Duration: duration}
		if err := testRepo.Create(test); err != nil {
			log.Fatal().Err(err).Msg("Failed to create test")
		}
	default:
		log.Fatal().Err(err).Msg("Failed to look up test")
	}

	for i := range questions {
		questions[i].TestID = test.ID
	}
	if err := questionRepo.CreateBatch(questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert questions")
	}

	log.Info().
		Str("subject", subject).
		Int("questions", len(questions)).
		Int("duration", duration).
		Msg("Import complete")
}

func readQuestions(path string) ([]model.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("no data rows in sheet")
	}

	// Map header names to column positions so column order does not matter.
	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"question", "option1", "option2", "option3", "option4", "answer"} {
		if _, ok := cols[required]; !ok {
			return nil, errors.New("missing column: " + required)
		}
	}

	cell := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var questions []model.Question
	for n, row := range rows[1:] {
		text := cell(row, "question")
		options := []string{
			cell(row, "option1"),
			cell(row, "option2"),
			cell(row, "option3"),
			cell(row, "option4"),
		}
		answer := strings.ToUpper(cell(row, "answer"))

		if text == "" || options[0] == "" || options[1] == "" || options[2] == "" || options[3] == "" || answer == "" {
			log.Warn().Int("row", n+2).Msg("Skipping row with missing fields")
			continue
		}
		idx, ok := answerIndex[answer]
		if !ok {
			log.Warn().Int("row", n+2).Str("answer", answer).Msg("Skipping row with unrecognized answer")
			continue
		}

		questions = append(questions, model.Question{
			QuestionText:       text,
			Options:            datatypes.NewJSONSlice(options),
			CorrectAnswerIndex: idx,
		})
	}
	return questions, nil
}
