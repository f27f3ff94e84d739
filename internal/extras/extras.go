package extras

import (
	"github.com/pelletier/go-toml"

	"github.com/tomklaasen/eventbrite-tool/pkg/eventbrite"
)

type rawExtras struct {
	Attendee []struct {
		FirstName string `toml:"first_name"`
		LastName  string `toml:"last_name"`
		Company   string `toml:"company"`
		Status    string `toml:"status"`
	} `toml:"attendee"`
}

// Load reads extra attendees to append to single-event reports, from a TOML
// file of [[attendee]] blocks. Status defaults to Attending. An empty path
// means no extras.
func Load(path string) ([]eventbrite.Attendee, error) {
	if path == "" {
		return nil, nil
	}

	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawExtras
	if err := tree.Unmarshal(&raw); err != nil {
		return nil, err
	}

	attendees := make([]eventbrite.Attendee, 0, len(raw.Attendee))
	for _, extra := range raw.Attendee {
		status := extra.Status
		if status == "" {
			status = "Attending"
		}

		attendees = append(attendees, eventbrite.Attendee{
			Status: status,
			Profile: eventbrite.Profile{
				FirstName: extra.FirstName,
				LastName:  extra.LastName,
				Company:   extra.Company,
			},
		})
	}

	return attendees, nil
}
