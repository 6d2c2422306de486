/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package database

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/uptrace/bun"
)

var sqlFileOrderPattern = regexp.MustCompile(`^(\d+)_`)

// SQLInitManager executes seed SQL files. Files live under
// <root>/common and <root>/environments/<environment>; common files run
// first, each group ordered by the numeric prefix of the file name.
type SQLInitManager struct {
	db          bun.IDB
	environment string
	sqlRootPath string
	logger      Logger
}

type SQLFileInfo struct {
	Path        string
	Name        string
	Order       int
	Environment string
}

type ExecutionResult struct {
	File         string
	Error        error
	Duration     time.Duration
	RowsAffected int64
}

func NewSQLInitManager(db bun.IDB, environment string, logger Logger) *SQLInitManager {
	if logger == nil {
		logger = GetLogger()
	}
	return &SQLInitManager{
		db:          db,
		environment: environment,
		sqlRootPath: "configs/sql",
		logger:      logger,
	}
}

func (s *SQLInitManager) SetSQLRootPath(path string) {
	s.sqlRootPath = path
}

// ExecuteInitialization runs every discovered SQL file and stops at the
// first failing statement.
func (s *SQLInitManager) ExecuteInitialization(ctx context.Context) error {
	s.logger.Info("Starting SQL initialization", "environment", s.environment, "sql_path", s.sqlRootPath)

	files, err := s.GetSQLFiles()
	if err != nil {
		return fmt.Errorf("failed to get SQL files: %w", err)
	}
	if len(files) == 0 {
		s.logger.Info("No SQL files found to execute")
		return nil
	}

	for _, file := range files {
		result := s.executeFile(ctx, file)
		if result.Error != nil {
			s.logger.Error("SQL file execution failed", "file", result.File, "error", result.Error.Error())
			return fmt.Errorf("SQL file execution failed %s: %w", result.File, result.Error)
		}
		s.logger.Info("SQL file executed successfully", "file", result.File, "duration", result.Duration, "rows_affected", result.RowsAffected)
	}

	s.logger.Info("SQL initialization completed", "total_files", len(files), "environment", s.environment)
	return nil
}

func (s *SQLInitManager) GetSQLFiles() ([]SQLFileInfo, error) {
	var files []SQLFileInfo
	dirs := []struct{ path, env string }{
		{filepath.Join(s.sqlRootPath, "common"), "common"},
		{filepath.Join(s.sqlRootPath, "environments", s.environment), s.environment},
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir.path); os.IsNotExist(err) {
			continue
		}
		found, err := s.getFilesFromDir(dir.path, dir.env)
		if err != nil {
			return nil, fmt.Errorf("failed to read SQL files in %s: %w", dir.path, err)
		}
		files = append(files, found...)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Environment != files[j].Environment {
			return files[i].Environment == "common"
		}
		return files[i].Order < files[j].Order
	})
	return files, nil
}

func (s *SQLInitManager) getFilesFromDir(dir, environment string) ([]SQLFileInfo, error) {
	var files []SQLFileInfo
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			return nil
		}
		files = append(files, SQLFileInfo{
			Path:        path,
			Name:        d.Name(),
			Order:       parseFileOrder(d.Name()),
			Environment: environment,
		})
		return nil
	})
	return files, err
}

// parseFileOrder reads the numeric prefix of "NNN_name.sql"; files without
// one run last.
func parseFileOrder(filename string) int {
	if m := sqlFileOrderPattern.FindStringSubmatch(filename); len(m) > 1 {
		if order, err := strconv.Atoi(m[1]); err == nil {
			return order
		}
	}
	return 999
}

func (s *SQLInitManager) executeFile(ctx context.Context, file SQLFileInfo) (result ExecutionResult) {
	start := time.Now()
	result.File = file.Path
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(file.Path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read file: %w", err)
		return result
	}
	rendered, err := s.replaceEnvVariables(string(content))
	if err != nil {
		result.Error = err
		return result
	}

	for _, stmt := range splitSQLStatements(rendered) {
		res, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			result.Error = fmt.Errorf("failed to execute SQL statement: %s, error: %w", stmt, err)
			return result
		}
		if n, err := res.RowsAffected(); err == nil {
			result.RowsAffected += n
		}
	}
	return result
}

// replaceEnvVariables renders the file as a text/template whose data is the
// process environment plus ENVIRONMENT and TIMESTAMP.
func (s *SQLInitManager) replaceEnvVariables(content string) (string, error) {
	tmpl, err := template.New("sql").Option("missingkey=zero").Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		if k, v, ok := strings.Cut(env, "="); ok {
			envVars[k] = v
		}
	}
	envVars["ENVIRONMENT"] = s.environment
	envVars["TIMESTAMP"] = time.Now().Format("2006-01-02 15:04:05")

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// splitSQLStatements splits on lines ending with ";" outside single-quoted
// literals. Blank lines and "--" comments outside literals are dropped;
// lines continuing a literal keep their line break.
func splitSQLStatements(content string) []string {
	var (
		statements []string
		current    strings.Builder
		inQuote    bool
	)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		continued := inQuote
		line, quoted := stripLineComment(scanner.Text(), inQuote)
		if !continued {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
		}
		if current.Len() > 0 {
			if continued {
				current.WriteByte('\n')
			} else {
				current.WriteByte(' ')
			}
		}
		current.WriteString(line)
		inQuote = quoted
		if !inQuote && strings.HasSuffix(strings.TrimSpace(line), ";") {
			statements = append(statements, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}

// stripLineComment cuts a trailing "--" comment that starts outside a
// literal and reports whether the line ends inside one.
func stripLineComment(line string, inQuote bool) (string, bool) {
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\'':
			inQuote = !inQuote
		case !inQuote && line[i] == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i], inQuote
		}
	}
	return line, inQuote
}
