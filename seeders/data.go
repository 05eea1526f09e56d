package seeders

var roomsData = []struct {
	Name     string
	Capacity int
}{
	{Name: "Lecture Hall A", Capacity: 120},
	{Name: "Seminar Room 1", Capacity: 24},
	{Name: "Seminar Room 2", Capacity: 24},
	{Name: "Meeting Room North", Capacity: 10},
	{Name: "Meeting Room South", Capacity: 8},
	{Name: "Computer Lab", Capacity: 30},
}

var equipmentsData = []struct {
	Name        string
	Description string
	Quantity    int
	Mobile      bool
}{
	{Name: "Projector", Description: "Full HD projector with HDMI", Quantity: 8, Mobile: true},
	{Name: "Flipchart", Description: "Flipchart stand with paper pad", Quantity: 10, Mobile: true},
	{Name: "Conference Phone", Description: "Speakerphone for hybrid meetings", Quantity: 4, Mobile: true},
	{Name: "Laptop Cart", Description: "Cart with 15 student laptops", Quantity: 2, Mobile: true},
	{Name: "Whiteboard", Description: "Wall-mounted whiteboard", Quantity: 12, Mobile: false},
	{Name: "Smart Board", Description: "Interactive display board", Quantity: 3, Mobile: false},
}

// Fixed equipment installed in rooms, by name.
var roomEquipmentsData = []struct {
	RoomName      string
	EquipmentName string
	Quantity      int
}{
	{RoomName: "Lecture Hall A", EquipmentName: "Whiteboard", Quantity: 2},
	{RoomName: "Lecture Hall A", EquipmentName: "Smart Board", Quantity: 1},
	{RoomName: "Seminar Room 1", EquipmentName: "Whiteboard", Quantity: 1},
	{RoomName: "Seminar Room 2", EquipmentName: "Whiteboard", Quantity: 1},
	{RoomName: "Meeting Room North", EquipmentName: "Whiteboard", Quantity: 1},
	{RoomName: "Computer Lab", EquipmentName: "Smart Board", Quantity: 1},
}

var usersData = []struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      string
	Password  string
}{
	{Username: "admin", FirstName: "Alice", LastName: "Keller", Email: "admin@example.edu", Role: "admin", Password: "admin123"},
	{Username: "j.brown", FirstName: "James", LastName: "Brown", Email: "j.brown@example.edu", Role: "professor", Password: "password"},
	{Username: "m.garcia", FirstName: "Maria", LastName: "Garcia", Email: "m.garcia@example.edu", Role: "staff", Password: "password"},
	{Username: "s.chen", FirstName: "Sofia", LastName: "Chen", Email: "s.chen@example.edu", Role: "student", Password: "password"},
}
