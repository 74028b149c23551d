package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/regexlab/ent/schema"
)

const llmEventsTable = "llm_request_events"

// llmEventsSchema builds the migration table for the LLMRequestEvent ent
// schema: an auto-increment id followed by the mixin and entity fields.
func llmEventsSchema() (*schema.Table, error) {
	def := entschema.LLMRequestEvent{}

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	t := schema.NewTable(llmEventsTable)
	t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %q: %w", d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		// Func defaults such as time.Now are applied on insert.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		t.AddColumn(c)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		name := "llmrequestevent_" + strings.Join(d.Fields, "_")
		t.AddIndex(name, d.Unique, d.Fields)
	}
	return t, nil
}

// migrate creates or updates the event table through ent's migration engine.
func migrate(ctx context.Context, drv dialect.Driver) error {
	t, err := llmEventsSchema()
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, t)
}
