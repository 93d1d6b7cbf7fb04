// ABOUTME: MCP tool implementations for the training catalog.
// ABOUTME: Exposes the read-only selection flow: objectives, muscles, exercises, parameters.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/gymguide/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_objectives",
		Description: "List training objectives (hypertrophy, cardio endurance, fat loss)",
	}, s.handleListObjectives)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_frequency_levels",
		Description: "List weekly training frequency levels",
	}, s.handleListFrequencyLevels)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_muscles",
		Description: "List muscle groups with their lookup keys, optionally only those trained for an objective",
	}, s.handleListMuscles)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercises for a muscle group and objective",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise_detail",
		Description: "Get an exercise with sets, reps and rest for a frequency level",
	}, s.handleGetExerciseDetail)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_routine",
		Description: "Get every exercise of an objective with the parameters for a frequency level",
	}, s.handleGetRoutine)
}

// Tool input/output types

type emptyInput struct{}

type objectivesOutput struct {
	Objectives []models.Objective `json:"objectives"`
}

type frequencyLevelsOutput struct {
	FrequencyLevels []models.FrequencyLevel `json:"frequency_levels"`
}

type listMusclesInput struct {
	ObjectiveID int64 `json:"objective_id,omitempty" jsonschema:"Only muscles with exercises for this objective id"`
}

type muscleOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

type musclesOutput struct {
	Muscles []muscleOutput `json:"muscles"`
}

type listExercisesInput struct {
	Muscle      string `json:"muscle" jsonschema:"Muscle key (biceps, abdomen, cuadriceps) or numeric id"`
	ObjectiveID int64  `json:"objective_id" jsonschema:"Objective id"`
}

type exercisesOutput struct {
	Muscle    string                   `json:"muscle"`
	Exercises []models.ExerciseSummary `json:"exercises"`
}

type exerciseDetailInput struct {
	ExerciseID  int64 `json:"exercise_id" jsonschema:"Exercise id"`
	FrequencyID int64 `json:"frequency_id" jsonschema:"Frequency level id"`
}

type exerciseDetailOutput struct {
	Found   bool                   `json:"found"`
	Detail  *models.ExerciseDetail `json:"detail,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type routineInput struct {
	Objective string `json:"objective" jsonschema:"Objective name, e.g. Hipertrofia"`
	Frequency string `json:"frequency" jsonschema:"Frequency level label, e.g. 1–3 h/semana"`
}

type routineOutput struct {
	Objective string                `json:"objective"`
	Frequency string                `json:"frequency"`
	Entries   []models.RoutineEntry `json:"entries"`
}

// Tool handlers

func (s *Server) handleListObjectives(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, objectivesOutput, error) {
	objectives, err := s.repo.ListObjectives(ctx)
	if err != nil {
		return nil, objectivesOutput{}, fmt.Errorf("failed to list objectives: %w", err)
	}
	return nil, objectivesOutput{Objectives: objectives}, nil
}

func (s *Server) handleListFrequencyLevels(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, frequencyLevelsOutput, error) {
	levels, err := s.repo.ListFrequencyLevels(ctx)
	if err != nil {
		return nil, frequencyLevelsOutput{}, fmt.Errorf("failed to list frequency levels: %w", err)
	}
	return nil, frequencyLevelsOutput{FrequencyLevels: levels}, nil
}

func (s *Server) handleListMuscles(ctx context.Context, req *mcp.CallToolRequest, input listMusclesInput) (*mcp.CallToolResult, musclesOutput, error) {
	var (
		muscles []models.Muscle
		err     error
	)
	if input.ObjectiveID > 0 {
		muscles, err = s.repo.ListMusclesByObjective(ctx, input.ObjectiveID)
	} else {
		muscles, err = s.repo.ListMuscles(ctx)
	}
	if err != nil {
		return nil, musclesOutput{}, fmt.Errorf("failed to list muscles: %w", err)
	}

	out := musclesOutput{Muscles: make([]muscleOutput, 0, len(muscles))}
	for _, m := range muscles {
		out.Muscles = append(out.Muscles, muscleOutput{ID: m.ID, Name: m.Name, Key: m.Key()})
	}
	return nil, out, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	muscle, ok, err := s.repo.ResolveMuscle(ctx, input.Muscle)
	if err != nil {
		return nil, exercisesOutput{}, fmt.Errorf("failed to resolve muscle: %w", err)
	}
	if !ok {
		return nil, exercisesOutput{}, fmt.Errorf("unknown muscle: %s", input.Muscle)
	}

	exercises, err := s.repo.ListExercisesByMuscleAndObjective(ctx, muscle.ID, input.ObjectiveID)
	if err != nil {
		return nil, exercisesOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}
	return nil, exercisesOutput{Muscle: muscle.Name, Exercises: exercises}, nil
}

func (s *Server) handleGetExerciseDetail(ctx context.Context, req *mcp.CallToolRequest, input exerciseDetailInput) (*mcp.CallToolResult, exerciseDetailOutput, error) {
	detail, ok, err := s.repo.GetExerciseDetail(ctx, input.ExerciseID, input.FrequencyID)
	if err != nil {
		return nil, exerciseDetailOutput{}, fmt.Errorf("failed to get exercise detail: %w", err)
	}
	if !ok {
		return nil, exerciseDetailOutput{
			Message: fmt.Sprintf("No training parameters for exercise %d at frequency %d.", input.ExerciseID, input.FrequencyID),
		}, nil
	}
	return nil, exerciseDetailOutput{Found: true, Detail: &detail}, nil
}

func (s *Server) handleGetRoutine(ctx context.Context, req *mcp.CallToolRequest, input routineInput) (*mcp.CallToolResult, routineOutput, error) {
	entries, err := s.repo.ListRoutine(ctx, input.Objective, input.Frequency)
	if err != nil {
		return nil, routineOutput{}, fmt.Errorf("failed to build routine: %w", err)
	}
	return nil, routineOutput{
		Objective: input.Objective,
		Frequency: input.Frequency,
		Entries:   entries,
	}, nil
}
