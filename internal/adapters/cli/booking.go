package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hotel_booking/internal/domain"
)

func newReserveCmd(cl *client) *cobra.Command {
	var (
		personID string
		guest    domain.Guest
		hotelID  int64
		roomID   int64
		checkIn  string
		checkOut string
		showJSON bool
	)

	c := &cobra.Command{
		Use:   "reserve",
		Short: "Book a room for an existing person or a guest identified by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := domain.ParseDate(checkIn); err != nil {
				return fmt.Errorf("invalid --check-in (want YYYY-MM-DD)")
			}
			if _, err := domain.ParseDate(checkOut); err != nil {
				return fmt.Errorf("invalid --check-out (want YYYY-MM-DD)")
			}
			body := map[string]any{
				"hotel_id":  hotelID,
				"room_id":   roomID,
				"check_in":  checkIn,
				"check_out": checkOut,
			}
			switch {
			case personID != "":
				body["person_id"] = personID
			case guest.Email != "":
				body["guest"] = guest
			default:
				return fmt.Errorf("either --person-id or --email is required")
			}

			var res domain.Reservation
			if err := cl.do(cmd.Context(), "POST", "/v1/reservations", body, &res); err != nil {
				return err
			}
			if showJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reservation id=%d room=%s nights=%d total=%s\n",
				res.ID, res.Room.Number, res.Nights, res.TotalPrice)
			return nil
		},
	}

	c.Flags().StringVar(&personID, "person-id", "", "existing person id")
	c.Flags().StringVar(&guest.Email, "email", "", "guest email (reuses the person with this email)")
	c.Flags().StringVar(&guest.FirstName, "first-name", "", "guest first name")
	c.Flags().StringVar(&guest.LastName, "last-name", "", "guest last name")
	c.Flags().StringVar(&guest.Phone, "phone", "", "guest phone")
	c.Flags().Int64Var(&hotelID, "hotel", 0, "hotel id")
	c.Flags().Int64Var(&roomID, "room", 0, "room id")
	c.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	c.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	c.Flags().BoolVar(&showJSON, "json", false, "print the full reservation as JSON")
	_ = c.MarkFlagRequired("hotel")
	_ = c.MarkFlagRequired("room")
	_ = c.MarkFlagRequired("check-in")
	_ = c.MarkFlagRequired("check-out")
	return c
}

func newCancelCmd(cl *client) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <reservation-id>",
		Short: "Cancel a reservation and release its room hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid reservation id %q", args[0])
			}
			if err := cl.do(cmd.Context(), "DELETE", "/v1/reservations/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled reservation id=%d\n", id)
			return nil
		},
	}
}
