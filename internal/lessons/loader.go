package lessons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalog читает все методички из папки lessons/.
// Ключ — код модуля в нижнем регистре (mm, fi, sd, pm).
func LoadCatalog(dir string) (map[string]Module, error) {
	result := make(map[string]Module)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if file.IsDir() || !(strings.HasSuffix(file.Name(), ".yaml") || strings.HasSuffix(file.Name(), ".yml")) {
			continue
		}
		path := filepath.Join(dir, file.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var m Module
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}
		// Код модуля — из поля module или из имени файла
		key := strings.ToLower(strings.TrimSpace(m.Module))
		if key == "" {
			key = strings.ToLower(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
			m.Module = key
		}
		result[key] = m
	}
	return result, nil
}
