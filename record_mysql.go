/* Copyright (C) 2021 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package hicbench

/* -------------------------------------------------------------------------- */

import "context"
import "database/sql"
import "errors"
import "fmt"
import "strings"

import "github.com/go-sql-driver/mysql"
import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

var ErrPersistence = errors.New("persistence failure")

const DefaultMetricsTable = "bm_metrics"

/* -------------------------------------------------------------------------- */

// Relational store of benchmark results. Each benchmark unit owns a row of
// the metrics table identified by its ID, metrics are stored in columns of
// the same name.
type MetricsStore struct {
  Config *mysql.Config
  Table   string
  Logger  logrus.FieldLogger
}

func NewMetricsStore(dsn string) (MetricsStore, error) {
  config, err := mysql.ParseDSN(dsn)
  if err != nil {
    return MetricsStore{}, fmt.Errorf("%w: invalid data source name: %v", ErrPersistence, err)
  }
  if config.DBName == "" {
    return MetricsStore{}, fmt.Errorf("%w: data source name does not specify a database", ErrPersistence)
  }
  return MetricsStore{Config: config, Table: DefaultMetricsTable}, nil
}

/* -------------------------------------------------------------------------- */

func quoteIdentifier(name string) string {
  return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func sqlValue(value interface{}) interface{} {
  if v, ok := value.(float64); ok && !isFinite(v) {
    return nil
  }
  return value
}

// Statement and arguments that store all metrics of r in the row with the
// given ID and reset its status.
func updateStatement(table, id string, r *MetricsRecord) (string, []interface{}, error) {
  if r.Length() == 0 {
    return "", nil, fmt.Errorf("%w: metrics record is empty", ErrPersistence)
  }
  columns := make([]string, 0, r.Length()+1)
  args    := make([]interface{}, 0, r.Length()+1)
  columns  = append(columns, "Status='0'")
  for _, field := range r.Fields() {
    columns = append(columns, quoteIdentifier(field.Name)+"=?")
    args    = append(args, sqlValue(field.Value))
  }
  args = append(args, id)
  query := fmt.Sprintf("UPDATE %s SET %s WHERE ID=?",
    quoteIdentifier(table), strings.Join(columns, ", "))
  return query, args, nil
}

func (s MetricsStore) Update(ctx context.Context, id string, r *MetricsRecord) error {
  logger := loggerOrDefault(s.Logger).WithField("id", id)
  query, args, err := updateStatement(s.Table, id, r)
  if err != nil {
    return err
  }
  /* open connection */
  db, err := sql.Open("mysql", s.Config.FormatDSN())
  if err != nil {
    return fmt.Errorf("%w: %v", ErrPersistence, err)
  }
  defer func() {
    db.Close()
    logger.Info("database connection closed")
  }()

  if err := db.PingContext(ctx); err != nil {
    return fmt.Errorf("%w: %v", ErrPersistence, err)
  }
  logger.Info("database connected")

  result, err := db.ExecContext(ctx, query, args...)
  if err != nil {
    return fmt.Errorf("%w: updating metrics of `%s' failed: %v", ErrPersistence, id, err)
  }
  if n, err := result.RowsAffected(); err == nil && n == 0 {
    logger.Warn("no metrics row was updated")
  }
  return nil
}
