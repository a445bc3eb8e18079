package models

// Service is a bookable treatment offered by the shop.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nome"`
	Duration    int     `json:"durata"`
	Price       float64 `json:"prezzo"`
	Description string  `json:"descrizione"`
}

// Barber is a staff member appointments can be assigned to.
type Barber struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"nome"`
	LastName   string `json:"cognome"`
	Experience string `json:"esperienza"`
	Specialty  string `json:"specialita"`
}

// FullName joins the non-empty name parts, or returns the unassigned label.
func (b *Barber) FullName() string {
	if b == nil {
		return UnassignedLabel
	}
	switch {
	case b.FirstName != "" && b.LastName != "":
		return b.FirstName + " " + b.LastName
	case b.FirstName != "":
		return b.FirstName
	case b.LastName != "":
		return b.LastName
	default:
		return UnassignedLabel
	}
}

// Appointment is owned by the backend; the engine only reads and classifies
// it, except for the cancel transition issued through the API.
type Appointment struct {
	ID         int64    `json:"id"`
	CustomerID int64    `json:"clienteId"`
	BarberID   *int64   `json:"barbiereId,omitempty"`
	ServiceID  *int64   `json:"servizioId,omitempty"`
	Barber     *Barber  `json:"barbiere,omitempty"`
	Service    *Service `json:"servizio,omitempty"`
	Date       string   `json:"data"`
	StartTime  string   `json:"orarioInizio"`
	Status     string   `json:"stato"`
}

// BusinessHours describes one weekday's opening window.
// Open == false implies both times are nil; Open == true implies both are set.
type BusinessHours struct {
	ID        int64   `json:"id"`
	Weekday   int     `json:"giorno"`
	Open      bool    `json:"aperto"`
	OpenTime  *string `json:"apertura"`
	CloseTime *string `json:"chiusura"`
}

// WaitingList is a customer's pending request for a freed slot.
type WaitingList struct {
	ID         int64    `json:"id"`
	CustomerID int64    `json:"clienteId"`
	ServiceID  *int64   `json:"servizioId,omitempty"`
	BarberID   *int64   `json:"barbiereId,omitempty"`
	Service    *Service `json:"servizio,omitempty"`
	Barber     *Barber  `json:"barbiere,omitempty"`
	Status     string   `json:"stato"`
}
