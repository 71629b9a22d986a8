package commander_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/MichalMitros/catalog-seeder/pkg/v1/commander"
	"github.com/MichalMitros/catalog-seeder/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendImportCommand(t *testing.T) {
	source := faker.URL()
	body := []byte(fmt.Sprintf(`{"source":"%s"}`, source))

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewImportCommander(sender)
			err := cmndr.SendImportCommand(context.TODO(), source)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitSendImportCommandEmptySource(t *testing.T) {
	cmndr := commander.NewImportCommander(mocks.NewSender(t))

	err := cmndr.SendImportCommand(context.TODO(), "  ")

	require.ErrorIs(t, err, commander.ErrEmptySource, "shouldn't send command without source")
}
