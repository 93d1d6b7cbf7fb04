// ABOUTME: Read-only export of the training catalog.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gymguide/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for the catalog.
type ExportData struct {
	Version            string                      `json:"version" yaml:"version"`
	ExportedAt         time.Time                   `json:"exported_at" yaml:"exported_at"`
	Tool               string                      `json:"tool" yaml:"tool"`
	Muscles            []models.Muscle             `json:"muscles" yaml:"muscles"`
	Objectives         []models.Objective          `json:"objectives" yaml:"objectives"`
	FrequencyLevels    []models.FrequencyLevel     `json:"frequency_levels" yaml:"frequency_levels"`
	Exercises          []models.Exercise           `json:"exercises" yaml:"exercises"`
	TrainingParameters []models.TrainingParameters `json:"training_parameters" yaml:"training_parameters"`
}

// Export retrieves the whole catalog. All tables are read under one read lock.
func (s *Store) Export(ctx context.Context) (*ExportData, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "gymguide",
	}

	if data.Muscles, err = s.listMuscles(ctx); err != nil {
		return nil, err
	}
	if data.Objectives, err = s.listObjectives(ctx); err != nil {
		return nil, err
	}
	if data.FrequencyLevels, err = s.listFrequencyLevels(ctx); err != nil {
		return nil, err
	}
	if data.Exercises, err = s.listExercises(ctx); err != nil {
		return nil, err
	}
	if data.TrainingParameters, err = s.listTrainingParameters(ctx); err != nil {
		return nil, err
	}
	return data, nil
}

// ExportJSON exports the catalog as JSON.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports the catalog as YAML, grouped by objective then muscle.
func (s *Store) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	v := newCatalogView(data)
	yamlData := struct {
		Version    string          `yaml:"version"`
		ExportedAt string          `yaml:"exported_at"`
		Tool       string          `yaml:"tool"`
		Objectives []yamlObjective `yaml:"objectives"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Objectives: make([]yamlObjective, 0, len(data.Objectives)),
	}

	for _, o := range data.Objectives {
		yo := yamlObjective{Name: o.Name}
		for _, p := range v.paramsByObjective[o.ID] {
			yo.Parameters = append(yo.Parameters, yamlParameters{
				Frequency:   v.frequencyNames[p.FrequencyID],
				Sets:        p.Sets,
				Reps:        p.Reps,
				RestSeconds: p.RestSeconds,
			})
		}
		for _, m := range data.Muscles {
			exercises := v.exercisesFor(m.ID, o.ID)
			if len(exercises) == 0 {
				continue
			}
			ym := yamlMuscle{Name: m.Name, Key: m.Key()}
			for _, e := range exercises {
				ym.Exercises = append(ym.Exercises, yamlExercise{ID: e.ID, Name: e.Name, Description: e.Description})
			}
			yo.Muscles = append(yo.Muscles, ym)
		}
		yamlData.Objectives = append(yamlData.Objectives, yo)
	}

	return yaml.Marshal(yamlData)
}

type yamlObjective struct {
	Name       string           `yaml:"name"`
	Parameters []yamlParameters `yaml:"parameters,omitempty"`
	Muscles    []yamlMuscle     `yaml:"muscles,omitempty"`
}

type yamlParameters struct {
	Frequency   string `yaml:"frequency"`
	Sets        string `yaml:"sets"`
	Reps        string `yaml:"reps"`
	RestSeconds string `yaml:"rest_seconds"`
}

type yamlMuscle struct {
	Name      string         `yaml:"name"`
	Key       string         `yaml:"key"`
	Exercises []yamlExercise `yaml:"exercises"`
}

type yamlExercise struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ExportMarkdown exports the catalog as Markdown tables. A non-empty
// objective restricts the output to that objective's section.
func (s *Store) ExportMarkdown(ctx context.Context, objective string) (string, error) {
	data, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	v := newCatalogView(data)

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Training Catalog - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	found := false
	for _, o := range data.Objectives {
		if objective != "" && !strings.EqualFold(o.Name, objective) {
			continue
		}
		found = true

		sb.WriteString(fmt.Sprintf("## %s\n\n", o.Name))
		sb.WriteString("| Frequency | Sets | Reps | Rest (s) |\n")
		sb.WriteString("|-----------|------|------|----------|\n")
		for _, p := range v.paramsByObjective[o.ID] {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				v.frequencyNames[p.FrequencyID], p.Sets, p.Reps, p.RestSeconds))
		}
		sb.WriteString("\n")

		for _, m := range data.Muscles {
			exercises := v.exercisesFor(m.ID, o.ID)
			if len(exercises) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s\n\n", m.Name))
			sb.WriteString("| ID | Exercise | Description |\n")
			sb.WriteString("|----|----------|-------------|\n")
			for _, e := range exercises {
				sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", e.ID, e.Name, e.Description))
			}
			sb.WriteString("\n")
		}
	}

	if objective != "" && !found {
		return "", fmt.Errorf("unknown objective: %s", objective)
	}
	return sb.String(), nil
}

// catalogView indexes an export for rendering.
type catalogView struct {
	frequencyNames    map[int64]string
	paramsByObjective map[int64][]models.TrainingParameters
	exercises         []models.Exercise
}

func newCatalogView(data *ExportData) *catalogView {
	v := &catalogView{
		frequencyNames:    make(map[int64]string, len(data.FrequencyLevels)),
		paramsByObjective: make(map[int64][]models.TrainingParameters),
		exercises:         data.Exercises,
	}
	for _, f := range data.FrequencyLevels {
		v.frequencyNames[f.ID] = f.Level
	}
	for _, p := range data.TrainingParameters {
		v.paramsByObjective[p.ObjectiveID] = append(v.paramsByObjective[p.ObjectiveID], p)
	}
	return v
}

func (v *catalogView) exercisesFor(muscleID, objectiveID int64) []models.Exercise {
	var out []models.Exercise
	for _, e := range v.exercises {
		if e.MuscleID == muscleID && e.ObjectiveID == objectiveID {
			out = append(out, e)
		}
	}
	return out
}
