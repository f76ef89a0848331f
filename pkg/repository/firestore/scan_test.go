package firestore_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/repository"
	"github.com/secmon-lab/barrage/pkg/repository/firestore"
	"github.com/secmon-lab/barrage/pkg/repository/testhelper"
)

func TestFirestoreScanRepository(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("Firestore credentials not configured (TEST_FIRESTORE_PROJECT_ID, TEST_FIRESTORE_DATABASE_ID)")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err)

	testhelper.TestAll(t, repo)
}

func TestToFirestoreID(t *testing.T) {
	// Valid cases
	id, err := firestore.ToFirestoreID("barrage")
	gt.NoError(t, err)
	gt.V(t, id).Equal("barrage")

	id, err = firestore.ToFirestoreID("my-org/my-repo")
	gt.NoError(t, err)
	gt.V(t, id).Equal("my-org:my-repo")

	// Invalid cases
	_, err = firestore.ToFirestoreID("")
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	_, err = firestore.ToFirestoreID("my-org:my-repo")
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}
