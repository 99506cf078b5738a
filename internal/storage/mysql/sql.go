package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, stars, street, city, state, zip_code, country)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name     = VALUES(name),
  stars    = VALUES(stars),
  street   = VALUES(street),
  city     = VALUES(city),
  state    = VALUES(state),
  zip_code = VALUES(zip_code),
  country  = VALUES(country)
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, room_number, floor, capacity, sea_view, smoking_allowed, room_type, price, in_service)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id        = VALUES(hotel_id),
  room_number     = VALUES(room_number),
  floor           = VALUES(floor),
  capacity        = VALUES(capacity),
  sea_view        = VALUES(sea_view),
  smoking_allowed = VALUES(smoking_allowed),
  room_type       = VALUES(room_type),
  price           = VALUES(price),
  in_service      = VALUES(in_service)
`

const upsertGuestSQL = `
INSERT INTO guests
  (id, first_name, last_name, email, phone, loyalty_points)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  first_name     = VALUES(first_name),
  last_name      = VALUES(last_name),
  email          = VALUES(email),
  phone          = VALUES(phone),
  loyalty_points = VALUES(loyalty_points)
`

// Holds are keyed by (room, range, status); re-importing only refreshes the note.
const upsertHoldSQL = `
INSERT INTO room_holds
  (room_id, start_date, end_date, status, note)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  note = VALUES(note)
`

// Note: `comment` is quoted everywhere to stay clear of reserved words.
const upsertReviewSQL = "INSERT INTO reviews\n  (id, hotel_id, guest_id, rating, `comment`)\nVALUES\n  (?, ?, ?, ?, ?)\n" +
	"ON DUPLICATE KEY UPDATE\n" +
	"  rating    = VALUES(rating),\n" +
	"  `comment` = VALUES(`comment`)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectHotelsSQL = `
SELECT id, name, stars, street, city, state, zip_code, country
FROM hotels
ORDER BY id
`

const selectRoomsSQL = `
SELECT id, hotel_id, room_number, floor, capacity, sea_view, smoking_allowed, room_type, price, in_service
FROM rooms
ORDER BY id
`

const selectGuestsSQL = `
SELECT id, first_name, last_name, email, phone, loyalty_points
FROM guests
ORDER BY id
`

const selectHoldsSQL = `
SELECT id, room_id, start_date, end_date, status, note
FROM room_holds
ORDER BY id
`

const selectReviewsSQL = "SELECT id, hotel_id, guest_id, rating, `comment`\nFROM reviews\nORDER BY id\n"
