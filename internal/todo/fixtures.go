package todo

// DemoTasks is the sample list seeded by `todos init --demo`
var DemoTasks = []struct {
	Text      string
	Completed bool
}{
	{"Buy milk", false},
	{"Pay electricity bill", true},
	{"Book dentist appointment", false},
	{"Renew library card", false},
	{"Water the plants", true},
	{"Call mom on Sunday", false},
	{"Return the borrowed ladder to the neighbours", false},
	{"Back up laptop", true},
}

// SeedDemo appends DemoTasks to s and returns how many were created
func SeedDemo(s *Store) int {
	created := 0
	for _, fixture := range DemoTasks {
		t, ok := s.Create(fixture.Text)
		if !ok {
			continue
		}
		if fixture.Completed {
			s.Toggle(t.ID)
		}
		created++
	}
	return created
}
