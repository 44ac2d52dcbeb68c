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

import "bytes"
import "crypto/sha256"
import "encoding/hex"
import "encoding/json"
import "fmt"
import "io"
import "math"
import "os"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

const HashField = "__hash__"

/* -------------------------------------------------------------------------- */

type MetricsField struct {
  Name  string
  Value interface{}
}

// An ordered set of named metrics. Values are scalars (float64, int, bool,
// string). Array valued metrics are stored as JSON encoded strings.
type MetricsRecord struct {
  fields []MetricsField
  index    map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewMetricsRecord() *MetricsRecord {
  return &MetricsRecord{index: make(map[string]int)}
}

func (r *MetricsRecord) Clone() *MetricsRecord {
  s := NewMetricsRecord()
  for _, field := range r.fields {
    s.Set(field.Name, field.Value)
  }
  return s
}

/* -------------------------------------------------------------------------- */

func (r *MetricsRecord) Length() int {
  return len(r.fields)
}

// Set a metric. Existing metrics keep their position.
func (r *MetricsRecord) Set(name string, value interface{}) {
  switch v := value.(type) {
  case float32:
    value = float64(v)
  case int64:
    value = int(v)
  case int32:
    value = int(v)
  }
  if i, ok := r.index[name]; ok {
    r.fields[i].Value = value
  } else {
    r.index[name] = len(r.fields)
    r.fields = append(r.fields, MetricsField{name, value})
  }
}

func (r *MetricsRecord) Get(name string) (interface{}, bool) {
  if i, ok := r.index[name]; ok {
    return r.fields[i].Value, true
  }
  return nil, false
}

func (r *MetricsRecord) Delete(name string) {
  i, ok := r.index[name]
  if !ok {
    return
  }
  r.fields = append(r.fields[:i], r.fields[i+1:]...)
  delete(r.index, name)
  for j := i; j < len(r.fields); j++ {
    r.index[r.fields[j].Name] = j
  }
}

func (r *MetricsRecord) Names() []string {
  names := make([]string, len(r.fields))
  for i, field := range r.fields {
    names[i] = field.Name
  }
  return names
}

func (r *MetricsRecord) Fields() []MetricsField {
  return r.fields
}

/* json
 * -------------------------------------------------------------------------- */

// Format a float the way python's json module does (shortest repr, with a
// trailing `.0' for integral values). Non-finite values are written as
// NaN, Infinity and -Infinity.
func formatJSONFloat(x float64) string {
  switch {
  case math.IsNaN(x):
    return "NaN"
  case math.IsInf(x, 1):
    return "Infinity"
  case math.IsInf(x, -1):
    return "-Infinity"
  }
  e := strconv.FormatFloat(x, 'e', -1, 64)
  exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
  if exp < -4 || exp >= 16 {
    return e
  }
  s := strconv.FormatFloat(x, 'f', -1, 64)
  if !strings.ContainsRune(s, '.') {
    s += ".0"
  }
  return s
}

/* -------------------------------------------------------------------------- */

// Strings starting with this prefix stand for non-finite numbers while
// decoding.
const jsonNonFinitePrefix = "\x00"

var jsonNonFiniteTokens = []string{"NaN", "-Infinity", "Infinity"}

// Replace the non-standard tokens NaN, Infinity and -Infinity outside of
// string literals by prefixed strings that encoding/json accepts.
func quoteNonFinite(data []byte) []byte {
  var buffer bytes.Buffer
  inString := false
  for i := 0; i < len(data); i++ {
    c := data[i]
    if inString {
      buffer.WriteByte(c)
      switch c {
      case '\\':
        if i+1 < len(data) {
          i++
          buffer.WriteByte(data[i])
        }
      case '"':
        inString = false
      }
      continue
    }
    if c == '"' {
      inString = true
      buffer.WriteByte(c)
      continue
    }
    matched := false
    for _, token := range jsonNonFiniteTokens {
      if bytes.HasPrefix(data[i:], []byte(token)) {
        buffer.WriteString(`"\u0000` + token + `"`)
        i += len(token)-1
        matched = true
        break
      }
    }
    if !matched {
      buffer.WriteByte(c)
    }
  }
  return buffer.Bytes()
}

// Convert a decoded value to a float. Null becomes NaN.
func jsonFloat(value interface{}) (float64, error) {
  switch v := value.(type) {
  case nil:
    return math.NaN(), nil
  case json.Number:
    return v.Float64()
  case string:
    switch v {
    case jsonNonFinitePrefix + "NaN":
      return math.NaN(), nil
    case jsonNonFinitePrefix + "Infinity":
      return math.Inf(1), nil
    case jsonNonFinitePrefix + "-Infinity":
      return math.Inf(-1), nil
    }
  }
  return 0.0, fmt.Errorf("invalid number `%v'", value)
}

func writeJSONString(buffer *bytes.Buffer, s string) error {
  encoder := json.NewEncoder(buffer)
  encoder.SetEscapeHTML(false)
  if err := encoder.Encode(s); err != nil {
    return err
  }
  // drop newline appended by Encode
  buffer.Truncate(buffer.Len()-1)
  return nil
}

func writeJSONValue(buffer *bytes.Buffer, value interface{}) error {
  switch v := value.(type) {
  case nil:
    buffer.WriteString("null")
  case float64:
    buffer.WriteString(formatJSONFloat(v))
  case int:
    buffer.WriteString(strconv.Itoa(v))
  case bool:
    buffer.WriteString(strconv.FormatBool(v))
  case string:
    return writeJSONString(buffer, v)
  default:
    return fmt.Errorf("metric has unsupported type `%T'", value)
  }
  return nil
}

// Serialize the record as a JSON object. Metrics are written in insertion
// order with `, ' and `: ' as separators.
func (r *MetricsRecord) MarshalJSON() ([]byte, error) {
  var buffer bytes.Buffer
  buffer.WriteString("{")
  for i, field := range r.fields {
    if i != 0 {
      buffer.WriteString(", ")
    }
    if err := writeJSONString(&buffer, field.Name); err != nil {
      return nil, err
    }
    buffer.WriteString(": ")
    if err := writeJSONValue(&buffer, field.Value); err != nil {
      return nil, fmt.Errorf("metric `%s': %w", field.Name, err)
    }
  }
  buffer.WriteString("}")
  return buffer.Bytes(), nil
}

func (r *MetricsRecord) UnmarshalJSON(data []byte) error {
  decoder := json.NewDecoder(bytes.NewReader(quoteNonFinite(data)))
  decoder.UseNumber()
  if t, err := decoder.Token(); err != nil {
    return err
  } else if t != json.Delim('{') {
    return fmt.Errorf("metrics record is not a JSON object")
  }
  s := NewMetricsRecord()
  for decoder.More() {
    t, err := decoder.Token()
    if err != nil {
      return err
    }
    name, ok := t.(string)
    if !ok {
      return fmt.Errorf("invalid metric name `%v'", t)
    }
    if t, err = decoder.Token(); err != nil {
      return err
    }
    switch v := t.(type) {
    case json.Number:
      if i, err := strconv.Atoi(v.String()); err == nil {
        s.Set(name, i)
      } else if f, err := v.Float64(); err == nil {
        s.Set(name, f)
      } else {
        return fmt.Errorf("metric `%s' has invalid value `%v'", name, v)
      }
    case string:
      if strings.HasPrefix(v, jsonNonFinitePrefix) {
        f, err := jsonFloat(v)
        if err != nil {
          return fmt.Errorf("metric `%s': %w", name, err)
        }
        s.Set(name, f)
      } else {
        s.Set(name, v)
      }
    case bool:
      s.Set(name, v)
    case nil:
      s.Set(name, math.NaN())
    default:
      return fmt.Errorf("metric `%s' is not a scalar", name)
    }
  }
  if _, err := decoder.Token(); err != nil {
    return err
  }
  *r = *s
  return nil
}

/* i/o
 * -------------------------------------------------------------------------- */

func (r *MetricsRecord) Write(w io.Writer) error {
  data, err := r.MarshalJSON()
  if err != nil {
    return err
  }
  _, err = w.Write(data)
  return err
}

func (r *MetricsRecord) Export(filename string) error {
  data, err := r.MarshalJSON()
  if err != nil {
    return err
  }
  return os.WriteFile(filename, data, 0666)
}

func (r *MetricsRecord) Import(filename string) error {
  data, err := readFile(filename)
  if err != nil {
    return err
  }
  if err := r.UnmarshalJSON(data); err != nil {
    return fmt.Errorf("reading metrics record `%s' failed: %w", filename, err)
  }
  return nil
}

/* array encoding
 * -------------------------------------------------------------------------- */

func JSONFloats(x []float64) string {
  var buffer bytes.Buffer
  buffer.WriteString("[")
  for i, v := range x {
    if i != 0 {
      buffer.WriteString(", ")
    }
    buffer.WriteString(formatJSONFloat(v))
  }
  buffer.WriteString("]")
  return buffer.String()
}

func JSONInts(x []int) string {
  var buffer bytes.Buffer
  buffer.WriteString("[")
  for i, v := range x {
    if i != 0 {
      buffer.WriteString(", ")
    }
    buffer.WriteString(strconv.Itoa(v))
  }
  buffer.WriteString("]")
  return buffer.String()
}

func JSONMatrix(x [][]float64) string {
  rows := make([]string, len(x))
  for i := range x {
    rows[i] = JSONFloats(x[i])
  }
  return "[" + strings.Join(rows, ", ") + "]"
}

func decodeJSONArray(s string, v interface{}) error {
  decoder := json.NewDecoder(bytes.NewReader(quoteNonFinite([]byte(s))))
  decoder.UseNumber()
  return decoder.Decode(v)
}

// Decode a JSON array of numbers. NaN, Infinity and -Infinity are
// accepted, null entries become NaN.
func ParseJSONFloats(s string) ([]float64, error) {
  tmp := []interface{}{}
  if err := decodeJSONArray(s, &tmp); err != nil {
    return nil, err
  }
  r := make([]float64, len(tmp))
  for i, v := range tmp {
    if f, err := jsonFloat(v); err != nil {
      return nil, err
    } else {
      r[i] = f
    }
  }
  return r, nil
}

func ParseJSONInts(s string) ([]int, error) {
  r := []int{}
  if err := json.Unmarshal([]byte(s), &r); err != nil {
    return nil, err
  }
  return r, nil
}

func ParseJSONMatrix(s string) ([][]float64, error) {
  tmp := [][]interface{}{}
  if err := decodeJSONArray(s, &tmp); err != nil {
    return nil, err
  }
  r := make([][]float64, len(tmp))
  for i := range tmp {
    r[i] = make([]float64, len(tmp[i]))
    for j, v := range tmp[i] {
      if f, err := jsonFloat(v); err != nil {
        return nil, err
      } else {
        r[i][j] = f
      }
    }
  }
  return r, nil
}

/* integrity hash
 * -------------------------------------------------------------------------- */

// Hex encoded sha256 of the serialized record followed by key.
func (r *MetricsRecord) Hash(key string) (string, error) {
  data, err := r.MarshalJSON()
  if err != nil {
    return "", err
  }
  h := sha256.Sum256(append(data, []byte(key)...))
  return hex.EncodeToString(h[:]), nil
}

// Compute the hash of all metrics (an existing hash field excluded) and
// store it in the hash field.
func (r *MetricsRecord) AddHash(key string) error {
  r.Delete(HashField)
  h, err := r.Hash(key)
  if err != nil {
    return err
  }
  r.Set(HashField, h)
  return nil
}

// Verify the hash field of the record. The record itself is not modified.
func (r *MetricsRecord) CheckHash(key string) (bool, error) {
  value, ok := r.Get(HashField)
  if !ok {
    return false, fmt.Errorf("metrics record has no field `%s'", HashField)
  }
  expected, ok := value.(string)
  if !ok {
    return false, fmt.Errorf("field `%s' is not a string", HashField)
  }
  s := r.Clone()
  s.Delete(HashField)
  h, err := s.Hash(key)
  if err != nil {
    return false, err
  }
  return h == expected, nil
}
