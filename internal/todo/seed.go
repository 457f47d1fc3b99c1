package todo

var seed = []Task{
	{ID: 1, Title: "Welcome! Add your first todo", Completed: false},
	{ID: 2, Title: "Plan the week ahead", Completed: false, Date: "2025-01-06", Time: "09:00 AM"},
	{ID: 3, Title: "Pay the electricity bill", Completed: false, Date: "2025-01-10", Time: "06:30 PM"},
	{ID: 4, Title: "Call the dentist", Completed: true, Date: "2025-01-03", Time: "11:15 AM"},
	{ID: 5, Title: "Read a chapter of a book", Completed: true},
}

// Seed returns the built-in example list used when nothing is stored yet.
func Seed() []Task {
	return clone(seed)
}
