package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/formloom/formloom-cli/pkg/models"
)

const (
	FormloomDir       = ".formloom"
	FormsDir          = "forms"
	SettingsFile      = "settings.yaml"
	DefaultOutputFile = "FORM.md"
)

func InitProjectStructure() error {
	dirs := []string{
		FormloomDir,
		filepath.Join(FormloomDir, FormsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the current directory has been initialized.
func ProjectExists() bool {
	info, err := os.Stat(FormloomDir)
	return err == nil && info.IsDir()
}

func ReadForm(path string) (*models.Form, error) {
	absPath := filepath.Join(FormloomDir, FormsDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read form %s: %w", path, err)
	}

	var form models.Form
	if err := yaml.Unmarshal(content, &form); err != nil {
		return nil, fmt.Errorf("failed to parse form YAML %s: %w", path, err)
	}

	form.Path = path

	return &form, nil
}

func WriteForm(form *models.Form) error {
	if form.Path == "" {
		form.Path = fmt.Sprintf("%s.yaml", form.Name)
	}

	absPath := filepath.Join(FormloomDir, FormsDir, form.Path)

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for form: %w", err)
	}

	content, err := yaml.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal form to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write form %s: %w", form.Path, err)
	}

	return nil
}

func ListForms() ([]string, error) {
	formsPath := filepath.Join(FormloomDir, FormsDir)

	entries, err := os.ReadDir(formsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	var forms []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			forms = append(forms, entry.Name())
		}
	}

	return forms, nil
}

func DeleteForm(path string) error {
	absPath := filepath.Join(FormloomDir, FormsDir, path)

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete form %s: %w", path, err)
	}

	return nil
}

func RenameForm(oldPath, newName string) error {
	oldAbs := filepath.Join(FormloomDir, FormsDir, oldPath)

	form, err := ReadForm(oldPath)
	if err != nil {
		return err
	}

	form.Name = newName
	form.Path = fmt.Sprintf("%s.yaml", newName)

	newAbs := filepath.Join(FormloomDir, FormsDir, form.Path)
	if _, err := os.Stat(newAbs); err == nil {
		return fmt.Errorf("a form named %s already exists", newName)
	}

	if err := WriteForm(form); err != nil {
		return err
	}

	if oldAbs != newAbs {
		if err := os.Remove(oldAbs); err != nil {
			return fmt.Errorf("failed to remove old form %s: %w", oldPath, err)
		}
	}

	return nil
}

// WriteFile writes content to a file (for exported output)
func WriteFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
