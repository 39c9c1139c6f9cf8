package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/MarcoKoban/lineage/am"
	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/logger"
)

// DateCmd groups the calendar commands
var DateCmd = &cobra.Command{
	Use:   "date",
	Short: "Convert dates and guess their calendar",
	Long: `date - Calendar conversion

Dates are written YYYY-MM-DD ("/" and "." also separate). Calendars are
gregorian, julian, french (Republican) and hebrew, or their first letter.

Examples:
  lineage date convert 1793-09-22 --to french
  lineage date convert 0002-01-01 --from french --to gregorian
  lineage date detect 5610-01-01          # hebrew
  lineage date detect 1800-03-01          # republican period, gregorian text`,
}

var dateConvertCmd = &cobra.Command{
	Use:   "convert <date>",
	Short: "Convert a complete date to another calendar",
	Long: `Convert a complete date between calendars through its serial day number.

--from defaults to calendar.default from the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runDateConvert,
}

var dateDetectCmd = &cobra.Command{
	Use:   "detect <date>",
	Short: "Guess the calendar of an untagged date",
	Long: `Guess the period of an untagged date from its year, using the
calendar.* thresholds from the configuration, and show how an import reads it.

Hebrew and Julian years are read in those calendars. Years in the French
Republican window are Gregorian years of that period; complete dates are
shown with their Republican equivalent.`,
	Args: cobra.ExactArgs(1),
	RunE: runDateDetect,
}

var (
	dateFrom   string
	dateTo     string
	dateFormat string
)

func init() {
	dateConvertCmd.Flags().StringVar(&dateFrom, "from", "", "Calendar of the input date (default: calendar.default)")
	dateConvertCmd.Flags().StringVar(&dateTo, "to", "gregorian", "Target calendar")
	dateConvertCmd.Flags().StringVarP(&dateFormat, "format", "f", "table", "Output format: table, toml, json, yaml")
	dateDetectCmd.Flags().StringVarP(&dateFormat, "format", "f", "table", "Output format: table, toml, json, yaml")

	DateCmd.AddCommand(dateConvertCmd)
	DateCmd.AddCommand(dateDetectCmd)
}

// DateConversion is the outcome of a conversion or detection.
type DateConversion struct {
	Input  string `json:"input" yaml:"input" toml:"input"`
	From   string `json:"from" yaml:"from" toml:"from"`
	To     string `json:"to" yaml:"to" toml:"to"`
	Result string `json:"result,omitempty" yaml:"result,omitempty" toml:"result,omitempty"`
	SDN    int    `json:"sdn,omitempty" yaml:"sdn,omitempty" toml:"sdn,omitempty"`
}

func (c DateConversion) rows() pterm.TableData {
	rows := pterm.TableData{
		{"Field", "Value"},
		{"Input", c.Input},
		{"From", c.From},
		{"To", c.To},
	}
	if c.Result != "" {
		rows = append(rows, []string{"Result", c.Result})
	}
	if c.SDN != 0 {
		rows = append(rows, []string{"SDN", strconv.Itoa(c.SDN)})
	}
	return rows
}

// parseStrict parses text in cal and refuses input the lenient parser
// would have partly dropped.
func parseStrict(text string, cal calendar.Calendar) (calendar.Date, error) {
	d, report := calendar.ParseDate(text, cal)
	if !report.OK() {
		return calendar.Date{}, errors.WithHint(
			errors.Wrapf(errors.ErrMalformedValue, "date %q: %s", text, report),
			"write dates as YYYY-MM-DD",
		)
	}
	if d.IsZero() {
		return calendar.Date{}, errors.NewInvalidRequestError("empty date")
	}
	return d, nil
}

// convertDate converts text from one calendar to another.
func convertDate(conv *calendar.Converter, text string, from, to calendar.Calendar) (DateConversion, error) {
	d, err := parseStrict(text, from)
	if err != nil {
		return DateConversion{}, err
	}
	sdn, err := from.System().ToSDN(d)
	if err != nil {
		return DateConversion{}, errors.WithHint(
			errors.Wrapf(err, "date %q", text),
			"conversion needs a complete, valid date",
		)
	}
	out, err := conv.Convert(d, to)
	if err != nil {
		return DateConversion{}, err
	}
	return DateConversion{
		Input:  text,
		From:   from.String(),
		To:     to.String(),
		Result: out.String(),
		SDN:    sdn,
	}, nil
}

// DateDetection is the outcome of reading an untagged date.
type DateDetection struct {
	Input     string `json:"input" yaml:"input" toml:"input"`
	Period    string `json:"period" yaml:"period" toml:"period"`
	ReadAs    string `json:"read_as" yaml:"read_as" toml:"read_as"`
	Resolved  string `json:"resolved" yaml:"resolved" toml:"resolved"`
	Gregorian string `json:"gregorian,omitempty" yaml:"gregorian,omitempty" toml:"gregorian,omitempty"`
	SDN       int    `json:"sdn,omitempty" yaml:"sdn,omitempty" toml:"sdn,omitempty"`
}

func (d DateDetection) rows() pterm.TableData {
	rows := pterm.TableData{
		{"Field", "Value"},
		{"Input", d.Input},
		{"Period", d.Period},
		{"Read as", d.ReadAs},
		{"Resolved", d.Resolved},
	}
	if d.Gregorian != "" {
		rows = append(rows, []string{"Gregorian", d.Gregorian})
	}
	if d.SDN != 0 {
		rows = append(rows, []string{"SDN", strconv.Itoa(d.SDN)})
	}
	return rows
}

// detectDate reads text the way an untagged record is imported: the period
// comes from the year, and Republican-period dates keep Gregorian components.
func detectDate(conv *calendar.Converter, text string) (DateDetection, error) {
	d, err := parseStrict(text, calendar.Gregorian)
	if err != nil {
		return DateDetection{}, err
	}
	resolved := conv.Interpret(d)
	result := DateDetection{
		Input:    text,
		Period:   conv.DetectCalendar(d).String(),
		ReadAs:   resolved.Calendar().String(),
		Resolved: resolved.String(),
	}
	if resolved.Calendar() == calendar.French {
		result.ReadAs = calendar.Gregorian.String()
	}

	if sdn, err := resolved.Calendar().System().ToSDN(resolved); err == nil {
		result.SDN = sdn
		result.Gregorian = calendar.Gregorian.System().FromSDN(sdn).String()
	} else if y, ok := calendar.GregorianYear(resolved); ok {
		result.Gregorian = strconv.Itoa(y)
	}
	return result, nil
}

func newConverter(cfg *am.Config) *calendar.Converter {
	return calendar.NewConverter(
		calendar.WithDetectRules(cfg.DetectRules()),
		calendar.WithLogger(logger.ComponentLogger("calendar")),
	)
}

func runDateConvert(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	from, err := cfg.DefaultCalendar()
	if err != nil {
		return err
	}
	if dateFrom != "" {
		if from, err = calendar.ParseCalendar(dateFrom); err != nil {
			return err
		}
	}
	to, err := calendar.ParseCalendar(dateTo)
	if err != nil {
		return err
	}

	conv, err := convertDate(newConverter(cfg), args[0], from, to)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), dateFormat, conv, "date conversion", conv.rows())
}

func runDateDetect(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	det, err := detectDate(newConverter(cfg), args[0])
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), dateFormat, det, "date detection", det.rows())
}
