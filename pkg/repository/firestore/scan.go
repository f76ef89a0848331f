package firestore

import (
	"context"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionProject = "project"
	collectionScan    = "scan"
	collectionFinding = "finding"
	batchSize         = 500
)

type scanRepository struct {
	client *firestore.Client
}

type findingDoc struct {
	ID string `firestore:"id"`
}

// ToFirestoreID converts a project name to a Firestore-safe document ID.
// Project names are often "owner/repo", so "/" is replaced with ":" which
// is rejected in the name itself to keep the conversion reversible.
func ToFirestoreID(project string) (string, error) {
	if project == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "project is empty")
	}

	if strings.Contains(project, ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "project contains invalid character ':'",
			goerr.V("project", project),
		)
	}

	return strings.ReplaceAll(project, "/", ":"), nil
}

func (r *scanRepository) scans(project string) (*firestore.CollectionRef, error) {
	projectID, err := ToFirestoreID(project)
	if err != nil {
		return nil, err
	}
	return r.client.Collection(collectionProject).Doc(projectID).Collection(collectionScan), nil
}

func (r *scanRepository) PutScan(ctx context.Context, record *model.ScanRecord) error {
	if record == nil || record.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "scan record requires ID")
	}

	scans, err := r.scans(record.Project)
	if err != nil {
		return err
	}
	docRef := scans.Doc(record.ID.String())

	// Finding IDs go to a sub collection to stay below the document size limit
	doc := *record
	doc.FindingIDs = nil
	if _, err := docRef.Set(ctx, &doc); err != nil {
		return goerr.Wrap(err, "failed to put scan",
			goerr.V("project", record.Project),
			goerr.V("scanID", record.ID),
		)
	}

	findings := docRef.Collection(collectionFinding)
	if err := r.clearFindings(ctx, findings); err != nil {
		return goerr.Wrap(err, "failed to clear finding IDs",
			goerr.V("project", record.Project),
			goerr.V("scanID", record.ID),
		)
	}

	// Process in batches of 500 (Firestore limit)
	for i := 0; i < len(record.FindingIDs); i += batchSize {
		end := min(i+batchSize, len(record.FindingIDs))

		batch := r.client.Batch()
		for _, id := range record.FindingIDs[i:end] {
			batch.Set(findings.Doc(id), &findingDoc{ID: id})
		}

		if _, err := batch.Commit(ctx); err != nil {
			return goerr.Wrap(err, "failed to batch put finding IDs",
				goerr.V("project", record.Project),
				goerr.V("scanID", record.ID),
				goerr.V("batchStart", i),
				goerr.V("batchEnd", end),
			)
		}
	}

	return nil
}

// clearFindings drops finding IDs left by a previous put of the same scan.
func (r *scanRepository) clearFindings(ctx context.Context, findings *firestore.CollectionRef) error {
	refs, err := findings.DocumentRefs(ctx).GetAll()
	if err != nil {
		return goerr.Wrap(err, "failed to list finding IDs")
	}

	for i := 0; i < len(refs); i += batchSize {
		end := min(i+batchSize, len(refs))

		batch := r.client.Batch()
		for _, ref := range refs[i:end] {
			batch.Delete(ref)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return goerr.Wrap(err, "failed to batch delete finding IDs")
		}
	}

	return nil
}

func (r *scanRepository) GetScan(ctx context.Context, project string, id types.ScanID) (*model.ScanRecord, error) {
	scans, err := r.scans(project)
	if err != nil {
		return nil, err
	}

	snap, err := scans.Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
				goerr.V("project", project),
				goerr.V("scanID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get scan",
			goerr.V("project", project),
			goerr.V("scanID", id),
		)
	}

	return r.decodeScan(ctx, snap)
}

func (r *scanRepository) GetLatestScan(ctx context.Context, project string) (*model.ScanRecord, error) {
	scans, err := r.ListScans(ctx, project, 1)
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, goerr.Wrap(repository.ErrNotFound, "no scan of project",
			goerr.V("project", project),
		)
	}
	return scans[0], nil
}

func (r *scanRepository) ListScans(ctx context.Context, project string, limit int) ([]*model.ScanRecord, error) {
	scans, err := r.scans(project)
	if err != nil {
		return nil, err
	}

	query := scans.OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.ScanRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scans",
				goerr.V("project", project),
			)
		}

		record, err := r.decodeScan(ctx, snap)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *scanRepository) decodeScan(ctx context.Context, snap *firestore.DocumentSnapshot) (*model.ScanRecord, error) {
	var record model.ScanRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scan",
			goerr.V("path", snap.Ref.Path),
		)
	}

	iter := snap.Ref.Collection(collectionFinding).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate finding IDs",
				goerr.V("path", snap.Ref.Path),
			)
		}

		var finding findingDoc
		if err := doc.DataTo(&finding); err != nil {
			return nil, goerr.Wrap(err, "failed to decode finding ID")
		}
		record.FindingIDs = append(record.FindingIDs, finding.ID)
	}
	sort.Strings(record.FindingIDs)

	return &record, nil
}
