package lessons

// Module описывает методичку одного учебного модуля (MM, FI, SD, PM).
type Module struct {
	Module string  `yaml:"module"`
	Title  string  `yaml:"title"`
	Levels []Level `yaml:"levels"`
}

// Level — один уровень методички с рабочим SQL-примером.
type Level struct {
	Level string `yaml:"level"` // beginner | intermediate | advanced
	Name  string `yaml:"name"`
	Body  string `yaml:"body,omitempty"`
	SQL   string `yaml:"sql,omitempty"`
}
