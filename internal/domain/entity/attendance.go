package entity

import "time"

// AttendanceRecord jornada de un usuario en un día calendario.
//
// Ciclo de vida: se crea al fichar entrada (ClockOut y TotalHours nulos) y se modifica
// una única vez al fichar salida. Nunca se borra ni se reabre.
type AttendanceRecord struct {
	ID         string
	UserID     string
	Date       time.Time // medianoche UTC del día calendario de la organización
	ClockIn    time.Time
	ClockOut   *time.Time
	TotalHours *float64 // no nulo sii ClockOut no es nulo
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasClockedOut indica si la jornada ya está cerrada.
func (r *AttendanceRecord) HasClockedOut() bool {
	return r.ClockOut != nil
}

// HoursBetween horas transcurridas entre in y out, sin redondeo.
func HoursBetween(in, out time.Time) float64 {
	return out.Sub(in).Hours()
}

// Close fija la salida y las horas trabajadas. notes nil conserva las notas de la entrada.
// La validación de estado (ya cerrado, salida anterior a la entrada) la hace el caso de uso.
func (r *AttendanceRecord) Close(at time.Time, notes *string) {
	hours := HoursBetween(r.ClockIn, at)
	r.ClockOut = &at
	r.TotalHours = &hours
	if notes != nil {
		r.Notes = notes
	}
	r.UpdatedAt = at
}
