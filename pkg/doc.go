// Package pkg holds the fascia libraries.
//
// The scaffold pipeline reads two tables and produces viewer documents:
//
//	anchor table + wire table
//	         ↓
//	    [tabular] (CSV rows → anchors and wires)
//	         ↓
//	    [scaffold] (group by layer, bind backgrounds, filter, normalize)
//	         ↓
//	    [io] (JSON documents, atomic writes)
//
// [pipeline] runs the passes in order behind a [cache], reporting each
// stage through [observability]. Background images come from a
// [resource] source, either a local directory or an object store bucket.
// [config] loads fascia.toml and the environment; [render] draws
// previews; [schema] inspects the viewer's JSON schema.
//
// [tabular]: github.com/matzehuels/fascia/pkg/tabular
// [scaffold]: github.com/matzehuels/fascia/pkg/scaffold
// [io]: github.com/matzehuels/fascia/pkg/io
// [pipeline]: github.com/matzehuels/fascia/pkg/pipeline
// [cache]: github.com/matzehuels/fascia/pkg/cache
// [observability]: github.com/matzehuels/fascia/pkg/observability
// [resource]: github.com/matzehuels/fascia/pkg/resource
// [config]: github.com/matzehuels/fascia/pkg/config
// [render]: github.com/matzehuels/fascia/pkg/render
// [schema]: github.com/matzehuels/fascia/pkg/schema
package pkg
