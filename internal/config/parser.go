package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"whiteboard/internal/domain"
)

// Parse reads configuration from r. Missing keys keep their defaults and
// unknown keys are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "text":
			err = setTextField(&cfg.Text, key, value)
		case "terminal":
			err = setTerminalField(&cfg.Terminal, key, value)
		case "render":
			err = setRenderField(&cfg.Render, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "data_dir":
		cfg.DataDir = value
	case "default_tool":
		t, err := domain.ParseTool(value)
		if err != nil {
			return err
		}
		cfg.DefaultTool = t
	case "history_limit":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("history_limit must not be negative, got %d", n)
		}
		cfg.HistoryLimit = n
	}
	return nil
}

func setTextField(t *Text, key, value string) error {
	switch key {
	case "font_size":
		return parsePositive(key, value, &t.FontSize)
	}
	return nil
}

func setTerminalField(t *Terminal, key, value string) error {
	switch key {
	case "cell_width":
		return parsePositive(key, value, &t.CellWidth)
	case "cell_height":
		return parsePositive(key, value, &t.CellHeight)
	}
	return nil
}

func setRenderField(r *Render, key, value string) error {
	var err error
	switch key {
	case "width":
		r.Width, err = parseInt(key, value)
	case "height":
		r.Height, err = parseInt(key, value)
	case "stroke_width":
		err = parsePositive(key, value, &r.StrokeWidth)
	}
	return err
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parsePositive(key, value string, dst *float64) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f <= 0 {
		return fmt.Errorf("%s must be positive, got %g", key, f)
	}
	*dst = f
	return nil
}
