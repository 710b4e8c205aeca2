/*
 * sqlbake.go, part of dumpviz.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package sqlbake is an exporter that bakes the evaluated geometry of the requested objects,
//frame by frame, into SQL tables. By default the output is a SQLite file at the request path.
//A postgres:// DSN sends the bake to a Postgres database instead.
package sqlbake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rmera/dumpviz"
)

const batchSize = 2000

// Exporter implements dumpviz.Exporter. It moves Timeline through the requested frames, so
// whatever is subscribed to it updates the objects, and stores their vertices after each move.
// The timeline is put back where it was when the export ends.
type Exporter struct {
	Timeline dumpviz.Timeline
	//DSN, if set, is used instead of the request path. Only postgres:// and
	//postgresql:// DSNs go to Postgres, anything else is a SQLite file name.
	DSN string
	//BoxAt, if set, gives the simulation box shown at a timeline position.
	BoxAt func(pos int) (dumpviz.Box, bool)
	Log   zerolog.Logger
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to dsn, Postgres or SQLite depending on its scheme.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
	if isPostgres(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// BakeID returns the ID of the bake for req.
func BakeID(req dumpviz.ExportRequest) string {
	names := make([]string, 0, len(req.Objects))
	for _, o := range req.Objects {
		names = append(names, o.Name())
	}
	key := fmt.Sprintf("%s|%d|%d|%d|%s", req.Path, req.Start, req.End, req.Step, strings.Join(names, ","))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// Export writes the bake. It blocks until every frame is stored, ctx is cancelled, or
// something fails. Nothing is committed unless every frame is stored.
func (E *Exporter) Export(ctx context.Context, req dumpviz.ExportRequest) error {
	if E.Timeline == nil {
		return dumpviz.NewPreconditionError("bake", "no timeline")
	}
	if len(req.Objects) == 0 {
		return dumpviz.NewPreconditionError("bake", "no objects requested")
	}
	dsn := E.DSN
	if dsn == "" {
		dsn = req.Path
	}
	if !isPostgres(dsn) {
		if err := os.Remove(dsn); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("sqlbake: removing previous file: %w", err)
		}
	}
	db, err := Open(dsn)
	if err != nil {
		return fmt.Errorf("sqlbake: opening %s: %w", req.Path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sqlbake: %w", err)
	}
	defer sqlDB.Close()
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("sqlbake: migrating schema: %w", err)
	}

	prev := E.Timeline.Current()
	defer E.Timeline.SetCurrent(prev)
	t0 := time.Now()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return E.bake(ctx, tx, req)
	})
	if err != nil {
		return fmt.Errorf("sqlbake: %w", err)
	}
	E.Log.Debug().Str("bake", BakeID(req)).Int("frames", len(req.Frames())).Dur("took", time.Since(t0)).Msg("bake stored")
	return nil
}

func (E *Exporter) bake(ctx context.Context, tx *gorm.DB, req dumpviz.ExportRequest) error {
	id := BakeID(req)
	//a previous bake of the same request is replaced.
	frames := tx.Model(&Frame{}).Select("id").Where("bake_id = ?", id)
	if err := tx.Where("frame_id IN (?)", frames).Delete(&Vertex{}).Error; err != nil {
		return err
	}
	if err := tx.Where("bake_id = ?", id).Delete(&Frame{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&Bake{ID: id}).Error; err != nil {
		return err
	}

	names := make([]string, 0, len(req.Objects))
	for _, o := range req.Objects {
		names = append(names, o.Name())
	}
	onames, err := json.Marshal(names)
	if err != nil {
		return err
	}
	opts, err := json.Marshal(req.Options)
	if err != nil {
		return err
	}
	b := &Bake{ID: id, Path: req.Path, Start: req.Start, End: req.End, Step: req.Step,
		Objects: datatypes.JSON(onames), Options: datatypes.JSON(opts)}
	if err := tx.Create(b).Error; err != nil {
		return err
	}

	var verts []Vertex
	for _, pos := range req.Frames() {
		if err := ctx.Err(); err != nil {
			return err
		}
		E.Timeline.SetCurrent(pos)
		box := datatypes.JSON("null")
		if E.BoxAt != nil {
			if bx, ok := E.BoxAt(pos); ok {
				j, err := json.Marshal(bx)
				if err != nil {
					return err
				}
				box = datatypes.JSON(j)
			}
		}
		for _, o := range req.Objects {
			mesh := o.Mesh()
			n := mesh.Len()
			f := &Frame{BakeID: id, Position: pos, Object: o.Name(), Vertices: n, Box: box}
			if err := tx.Create(f).Error; err != nil {
				return err
			}
			if n == 0 {
				continue
			}
			verts = verts[:0]
			for i := 0; i < n; i++ {
				v := mesh.Vec(i)
				verts = append(verts, Vertex{FrameID: f.ID, Atom: i, X: v[0], Y: v[1], Z: v[2]})
			}
			if err := tx.CreateInBatches(verts, batchSize).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
