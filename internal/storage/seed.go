// ABOUTME: Fixed seed dataset for the training catalog and the insert-if-absent seeding routine.
// ABOUTME: Conflicts on the declared unique keys are ignored, so seeding is idempotent.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Reference data, in id order on a fresh database.
var (
	seedMuscles = []string{
		"Bíceps",
		"Abdomen",
		"Cuádriceps",
	}

	seedObjectives = []string{
		"Hipertrofia",
		"Resistencia Cardiovascular",
		"Reducción de Grasa",
	}

	seedFrequencyLevels = []string{
		"No hace ejercicio",
		"1–3 h/semana",
		"4–7 h/semana",
	}
)

type seedExercise struct {
	name        string
	description string
	muscle      string
	objective   string
}

type seedParameters struct {
	objective   string
	frequency   string
	sets        string
	reps        string
	restSeconds string
}

var seedExercises = []seedExercise{
	// Hipertrofia
	{"Curl con banda elástica", "Pisa la banda con ambos pies y, con agarre supino, flexiona el codo hasta la altura del hombro.", "Bíceps", "Hipertrofia"},
	{"Curl alterno con mancuerna", "Sostén una mancuerna en cada mano y flexiona un brazo a la vez, controlando el descenso.", "Bíceps", "Hipertrofia"},
	{"Chin-up supino (negativos asistidos)", "Con agarre supino en una barra o marco de puerta, súbete con impulso ligero y desciende lentamente (3–5 s) para enfatizar la fase excéntrica.", "Bíceps", "Hipertrofia"},
	{"Crunch con carga", "Tumbado boca arriba, sujeta una botella o mochila ligera sobre el pecho y realiza el crunch tradicional.", "Abdomen", "Hipertrofia"},
	{"Elevación de piernas tumbado", "Con la espalda apoyada en el suelo, eleva las piernas rectas hasta 90° y baja controlando el movimiento sin apoyar los pies.", "Abdomen", "Hipertrofia"},
	{"Russian twists con peso", "Sentado con las piernas flexionadas, sujeta un balón o botella y rota el tronco llevando el peso hacia cada lado.", "Abdomen", "Hipertrofia"},
	{"Sentadilla con mochila", "Coloca una mochila con peso (libros) en la espalda y realiza sentadillas profundas (rodillas a 90°).", "Cuádriceps", "Hipertrofia"},
	{"Sentadilla búlgara", "Apoya un pie atrás sobre una silla, mantén el torso erguido y baja en sentadilla con la pierna delantera.", "Cuádriceps", "Hipertrofia"},
	{"Zancadas inversas", "Da un paso atrás y baja la rodilla trasera casi hasta el suelo, manteniendo la postura estable.", "Cuádriceps", "Hipertrofia"},

	// Resistencia Cardiovascular
	{"Burpee con curl de bíceps", "Sostén un par de mancuernas, realiza un burpee y, al incorporarte, efectúa un curl de bíceps rápidamente.", "Bíceps", "Resistencia Cardiovascular"},
	{"Renegade row alterno", "Desde posición de plancha con dos mancuernas, rema un brazo a la vez de forma rápida y controlada.", "Bíceps", "Resistencia Cardiovascular"},
	{"Curl rápido con banda elástica", "Pisa la banda y ejecuta curls continuos a ritmo elevado, enfatizando velocidad.", "Bíceps", "Resistencia Cardiovascular"},
	{"Mountain climbers", "En plancha alta, lleva cada rodilla al pecho de forma alterna y veloz.", "Abdomen", "Resistencia Cardiovascular"},
	{"Russian twists rápidos", "Sentado con piernas ligeramente flexionadas, gira el tronco tocando el suelo de un lado a otro con las manos.", "Abdomen", "Resistencia Cardiovascular"},
	{"Plank jacks", "En plancha frontal, abre y cierra los pies en salto manteniendo el core firme.", "Abdomen", "Resistencia Cardiovascular"},
	{"Jump squats", "Desde sentadilla profunda, impulsa un salto vertical y aterriza controlado sin pausa.", "Cuádriceps", "Resistencia Cardiovascular"},
	{"Jumping lunges", "Alterna zancada frontal con salto explosivo, cambiando de pierna en el aire.", "Cuádriceps", "Resistencia Cardiovascular"},
	{"Tuck jumps", "Salta llevando las rodillas al pecho y aterriza suavemente.", "Cuádriceps", "Resistencia Cardiovascular"},

	// Reducción de Grasa
	{"Squat + Curl de bíceps", "Sentadilla profunda seguida de un curl de bíceps al subir.", "Bíceps", "Reducción de Grasa"},
	{"Curl con banda en zona de pulsos", "Flexiona hasta la mitad del recorrido y realiza 10–15 pulsos cortos antes de completar la elevación.", "Bíceps", "Reducción de Grasa"},
	{"Curl alterno con mancuerna y salto ligero", "Flexiona un brazo mientras ejecutas un mini-salto con las rodillas semiflexionadas; alterna.", "Bíceps", "Reducción de Grasa"},
	{"Bicycle crunch", "Tumbado, lleva codo derecho a rodilla izquierda y viceversa en ritmo continuo.", "Abdomen", "Reducción de Grasa"},
	{"Plank to knee-tap", "En plancha alta, lleva la rodilla al codo correspondiente y alterna rápidamente.", "Abdomen", "Reducción de Grasa"},
	{"Flutter kicks", "Tumbado, eleva ligeramente las piernas y realiza patadas alternas rápidas sin apoyar pies.", "Abdomen", "Reducción de Grasa"},
	{"Jump squats", "Salta desde sentadilla profunda y retorna sin pausa.", "Cuádriceps", "Reducción de Grasa"},
	{"Walking lunges dinámicos", "Avanza en zancada manteniendo ritmo continuo y explosivo.", "Cuádriceps", "Reducción de Grasa"},
	{"Step-ups en escalón", "Sube y baja rápido de un escalón, alternando pierna líder.", "Cuádriceps", "Reducción de Grasa"},
}

var seedTrainingParameters = []seedParameters{
	{"Hipertrofia", "No hace ejercicio", "1–2", "8–10", "90"},
	{"Hipertrofia", "1–3 h/semana", "3", "10–12", "60"},
	{"Hipertrofia", "4–7 h/semana", "4", "12–15", "45"},

	{"Resistencia Cardiovascular", "No hace ejercicio", "1–2", "20–30", "90"},
	{"Resistencia Cardiovascular", "1–3 h/semana", "2–3", "30–40", "60"},
	{"Resistencia Cardiovascular", "4–7 h/semana", "3–4", "40–50", "30"},

	{"Reducción de Grasa", "No hace ejercicio", "1–2", "12–15", "90"},
	{"Reducción de Grasa", "1–3 h/semana", "2–3", "15–20", "60"},
	{"Reducción de Grasa", "4–7 h/semana", "3–4", "20–25", "45"},
}

// SeedCounts holds the number of rows a seeding pass actually inserted.
type SeedCounts struct {
	Muscles            int `json:"muscles"`
	Objectives         int `json:"objectives"`
	FrequencyLevels    int `json:"frequency_levels"`
	Exercises          int `json:"exercises"`
	TrainingParameters int `json:"training_parameters"`
}

// Total returns the sum over all tables.
func (c SeedCounts) Total() int {
	return c.Muscles + c.Objectives + c.FrequencyLevels + c.Exercises + c.TrainingParameters
}

// Foreign keys are resolved by name inside the statement. An unknown name
// yields NULL and trips the NOT NULL constraint, which ON CONFLICT DO NOTHING
// does not swallow.
const (
	insertMuscleSQL    = `INSERT INTO muscles (name) VALUES (?) ON CONFLICT DO NOTHING`
	insertObjectiveSQL = `INSERT INTO objectives (name) VALUES (?) ON CONFLICT DO NOTHING`
	insertFrequencySQL = `INSERT INTO frequency_levels (level) VALUES (?) ON CONFLICT DO NOTHING`
	insertExerciseSQL  = `
		INSERT INTO exercises (name, description, muscle_id, objective_id)
		VALUES (?, ?,
			(SELECT id FROM muscles WHERE name = ?),
			(SELECT id FROM objectives WHERE name = ?))
		ON CONFLICT DO NOTHING`
	insertParametersSQL = `
		INSERT INTO training_parameters (objective_id, frequency_id, sets, reps, rest_seconds)
		VALUES (
			(SELECT id FROM objectives WHERE name = ?),
			(SELECT id FROM frequency_levels WHERE level = ?),
			?, ?, ?)
		ON CONFLICT DO NOTHING`
)

// seed inserts every seed row that is not already present.
func seed(ctx context.Context, tx *sql.Tx) (SeedCounts, error) {
	var counts SeedCounts
	var err error

	if counts.Muscles, err = insertNames(ctx, tx, insertMuscleSQL, seedMuscles); err != nil {
		return counts, fmt.Errorf("seed muscles: %w", err)
	}
	if counts.Objectives, err = insertNames(ctx, tx, insertObjectiveSQL, seedObjectives); err != nil {
		return counts, fmt.Errorf("seed objectives: %w", err)
	}
	if counts.FrequencyLevels, err = insertNames(ctx, tx, insertFrequencySQL, seedFrequencyLevels); err != nil {
		return counts, fmt.Errorf("seed frequency levels: %w", err)
	}

	rows := make([][]any, 0, len(seedExercises))
	for _, e := range seedExercises {
		rows = append(rows, []any{e.name, e.description, e.muscle, e.objective})
	}
	if counts.Exercises, err = insertRows(ctx, tx, insertExerciseSQL, rows); err != nil {
		return counts, fmt.Errorf("seed exercises: %w", err)
	}

	rows = rows[:0]
	for _, p := range seedTrainingParameters {
		rows = append(rows, []any{p.objective, p.frequency, p.sets, p.reps, p.restSeconds})
	}
	if counts.TrainingParameters, err = insertRows(ctx, tx, insertParametersSQL, rows); err != nil {
		return counts, fmt.Errorf("seed training parameters: %w", err)
	}

	return counts, nil
}

func insertNames(ctx context.Context, tx *sql.Tx, query string, names []string) (int, error) {
	rows := make([][]any, len(names))
	for i, n := range names {
		rows[i] = []any{n}
	}
	return insertRows(ctx, tx, query, rows)
}

// insertRows runs one prepared insert per row and returns how many rows landed.
func insertRows(ctx context.Context, tx *sql.Tx, query string, rows [][]any) (int, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, args := range rows {
		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return inserted, fmt.Errorf("insert %v: %w", args[0], err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("insert %v: %w", args[0], err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}
