package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const derivationsTable = "derivations"

var derivationColumns = []string{
	"id", "sequence", "created_at", "project_name", "project_type",
	"tier", "filename", "skills", "enhanced", "document",
}

type derivationRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *derivationRepo) Record(ctx context.Context, d *Derivation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now().UTC()
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	d.Sequence = seqNum

	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	query, args := entsql.Dialect(r.drv.Dialect()).
		Insert(derivationsTable).
		Columns(derivationColumns...).
		Values(
			d.ID, d.Sequence, d.Timestamp.UnixMilli(), d.ProjectName, d.ProjectType,
			d.Tier, d.Filename, string(skillsJSON), d.Enhanced, d.Document,
		).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save derivation: %w", err)
	}
	return nil
}

func (r *derivationRepo) Get(ctx context.Context, id string) (*Derivation, error) {
	b := entsql.Dialect(r.drv.Dialect())
	query, args := b.Select(derivationColumns...).
		From(b.Table(derivationsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get derivation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get derivation: %w", err)
		}
		return nil, fmt.Errorf("derivation %s: %w", id, ErrNotFound)
	}
	return scanDerivation(rows)
}

func (r *derivationRepo) List(ctx context.Context, opts QueryOpts) ([]Derivation, error) {
	b := entsql.Dialect(r.drv.Dialect())
	sel := b.Select(derivationColumns...).
		From(b.Table(derivationsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query derivations: %w", err)
	}
	defer rows.Close()

	var out []Derivation
	for rows.Next() {
		d, err := scanDerivation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func scanDerivation(row rowScanner) (*Derivation, error) {
	var (
		d       Derivation
		created int64
		skills  string
	)
	err := row.Scan(
		&d.ID, &d.Sequence, &created, &d.ProjectName, &d.ProjectType,
		&d.Tier, &d.Filename, &skills, &d.Enhanced, &d.Document,
	)
	if err != nil {
		return nil, fmt.Errorf("scan derivation: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &d.Skills); err != nil {
		return nil, fmt.Errorf("decode skills for %s: %w", d.ID, err)
	}
	d.Timestamp = time.UnixMilli(created).UTC()
	return &d, nil
}
