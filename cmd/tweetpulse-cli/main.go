// Command tweetpulse-cli is a terminal counterpart of the dashboard: it
// signs in against the sentiment API, fetches and analyzes tweets, saves
// batches, and exports results to CSV or PDF.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akumar-dev/tweetpulse-be/internal/client"
	"github.com/akumar-dev/tweetpulse-be/internal/export"
	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	session, err := newSession()
	if err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "signup":
		runAuth(session.Signup, os.Args[2:])
	case "login":
		runAuth(session.Login, os.Args[2:])
	case "logout":
		if err := session.Logout(); err != nil {
			fatal(err)
		}
		fmt.Println("Logged out.")
	case "status":
		runStatus(session)
	case "analyze":
		runAnalyze(session, os.Args[2:])
	case "tweets":
		runTweets(session, os.Args[2:])
	case "hashtag":
		runHashtag(session, os.Args[2:])
	case "save-user":
		runSaveUser(session, os.Args[2:])
	case "save-hashtag":
		runSaveHashtag(session, os.Args[2:])
	case "saved":
		runSaved(session)
	case "export":
		runExport(session, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: tweetpulse-cli <command> [flags]

commands:
  signup        create an account (-u, -p)
  login         sign in (-u, -p)
  logout        clear the stored token
  status        show session state
  analyze       classify one tweet: analyze "text"
  tweets        fetch tweets for a user (-user, -count)
  hashtag       fetch tweets for a hashtag (-tag, -count)
  save-user     analyze and save a user's tweets (-user, -count)
  save-hashtag  analyze and save hashtag tweets (-tag, -count)
  saved         list saved batches
  export        export analyzed tweets (-user|-tag, -count, -format, -out)

TWEETPULSE_URL sets the API address (default http://localhost:5050).`)
}

func newSession() (*client.Session, error) {
	baseURL := os.Getenv("TWEETPULSE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5050"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".tweetpulse")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return client.NewSession(baseURL, &client.FileStore{Path: filepath.Join(dir, "token")})
}

func runAuth(fn func(username, password string) error, args []string) {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	fs.Parse(args)
	if *username == "" || *password == "" {
		fatal(errors.New("both -u and -p are required"))
	}
	if err := fn(*username, *password); err != nil {
		fatal(err)
	}
	fmt.Println("Signed in as", *username)
}

func runStatus(session *client.Session) {
	fmt.Println("Session:", session.State())
	if wait := session.RetryWait(); wait > 0 {
		fmt.Printf("Rate limited; retry in %s\n", wait.Round(time.Second))
	}
}

func runAnalyze(session *client.Session, args []string) {
	if len(args) != 1 {
		fatal(errors.New(`usage: analyze "tweet text"`))
	}
	result, err := session.AnalyzeTweet(args[0])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Sentiment: %s\nCleaned: %s\n", result.Sentiment, result.CleanedTweet)
}

func runTweets(session *client.Session, args []string) {
	fs := flag.NewFlagSet("tweets", flag.ExitOnError)
	user := fs.String("user", "", "Twitter username")
	count := fs.Int("count", 5, "number of tweets")
	fs.Parse(args)
	if *user == "" {
		fatal(errors.New("-user is required"))
	}
	result, err := session.FetchTweetsByUser(*user, *count)
	if err != nil {
		fatal(err)
	}
	for _, tweet := range result.Tweets {
		fmt.Printf("[%s] %s\n", tweet.CreatedAt, tweet.Text)
	}
}

func runHashtag(session *client.Session, args []string) {
	fs := flag.NewFlagSet("hashtag", flag.ExitOnError)
	tag := fs.String("tag", "", "hashtag without #")
	count := fs.Int("count", 10, "number of tweets")
	fs.Parse(args)
	if *tag == "" {
		fatal(errors.New("-tag is required"))
	}
	result, err := session.FetchTweetsByHashtag(*tag, *count)
	if err != nil {
		fatal(err)
	}
	for _, tweet := range result.Tweets {
		fmt.Printf("[%s] %s\n", tweet.CreatedAt, tweet.Text)
	}
}

func runSaveUser(session *client.Session, args []string) {
	fs := flag.NewFlagSet("save-user", flag.ExitOnError)
	user := fs.String("user", "", "Twitter username")
	count := fs.Int("count", 5, "number of tweets")
	fs.Parse(args)
	if *user == "" {
		fatal(errors.New("-user is required"))
	}

	result, err := session.AnalyzeUserTweets(*user, *count)
	if err != nil {
		fatal(err)
	}
	name := result.Name
	if name == "" {
		name = *user
	}
	if err := session.SaveUserBatch(*user, name, result.Tweets); err != nil {
		fatal(err)
	}
	fmt.Printf("Saved %d analyzed tweets for @%s\n", len(result.Tweets), *user)
}

func runSaveHashtag(session *client.Session, args []string) {
	fs := flag.NewFlagSet("save-hashtag", flag.ExitOnError)
	tag := fs.String("tag", "", "hashtag without #")
	count := fs.Int("count", 10, "number of tweets")
	fs.Parse(args)
	if *tag == "" {
		fatal(errors.New("-tag is required"))
	}

	analyzed, err := analyzeHashtag(session, *tag, *count)
	if err != nil {
		fatal(err)
	}
	if err := session.SaveHashtagBatch(*tag, analyzed); err != nil {
		fatal(err)
	}
	fmt.Printf("Saved %d analyzed tweets for #%s\n", len(analyzed), *tag)
}

func runSaved(session *client.Session) {
	userBatches, err := session.SavedUserBatches()
	if err != nil {
		fatal(err)
	}
	hashtagBatches, err := session.SavedHashtagBatches()
	if err != nil {
		fatal(err)
	}
	for _, batch := range userBatches {
		fmt.Printf("@%s (%s): %d tweets, saved %s\n", batch.Username, batch.Name, len(batch.Tweets), batch.SavedAt.Format(time.RFC822))
	}
	for _, batch := range hashtagBatches {
		fmt.Printf("#%s: %d tweets, saved %s\n", batch.Hashtag, len(batch.Tweets), batch.CreatedAt.Format(time.RFC822))
	}
}

func runExport(session *client.Session, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	user := fs.String("user", "", "Twitter username")
	tag := fs.String("tag", "", "hashtag without #")
	count := fs.Int("count", 10, "number of tweets")
	format := fs.String("format", "csv", "csv or pdf")
	out := fs.String("out", "", "output file")
	fs.Parse(args)

	if (*user == "") == (*tag == "") {
		fatal(errors.New("exactly one of -user or -tag is required"))
	}
	if *out == "" {
		fatal(errors.New("-out is required"))
	}

	var label, title string
	var analyzed []models.AnalyzedTweet
	var err error
	if *user != "" {
		label, title = *user, "Analyzed Tweets for @"+*user
		var result *upstreamAnalyzed
		result, err = fetchUserAnalysis(session, *user, *count)
		if err == nil {
			analyzed = result.Tweets
		}
	} else {
		label, title = *tag, "Analyzed Tweets for #"+*tag
		analyzed, err = analyzeHashtag(session, *tag, *count)
	}
	if err != nil {
		fatal(err)
	}

	file, err := os.Create(*out)
	if err != nil {
		fatal(err)
	}
	defer file.Close()

	switch *format {
	case "csv":
		err = export.WriteCSV(file, label, analyzed)
	case "pdf":
		err = export.WritePDF(file, title, label, analyzed)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fatal(err)
	}

	summary := export.Summarize(analyzed)
	fmt.Printf("Wrote %s: %d tweets (Positive %s%%, Negative %s%%, Neutral %s%%)\n",
		*out, summary.Total, summary.PositivePct(), summary.NegativePct(), summary.NeutralPct())
}

type upstreamAnalyzed struct {
	Name   string
	Tweets []models.AnalyzedTweet
}

func fetchUserAnalysis(session *client.Session, user string, count int) (*upstreamAnalyzed, error) {
	result, err := session.AnalyzeUserTweets(user, count)
	if err != nil {
		return nil, err
	}
	return &upstreamAnalyzed{Name: result.Name, Tweets: result.Tweets}, nil
}

// analyzeHashtag fetches hashtag tweets, then labels them through the
// batch endpoint.
func analyzeHashtag(session *client.Session, tag string, count int) ([]models.AnalyzedTweet, error) {
	fetched, err := session.FetchTweetsByHashtag(tag, count)
	if err != nil {
		return nil, err
	}
	items, err := session.AnalyzeBatch(fetched.Tweets)
	if err != nil {
		return nil, err
	}

	analyzed := make([]models.AnalyzedTweet, 0, len(items))
	for _, item := range items {
		analyzed = append(analyzed, models.AnalyzedTweet{
			Text:      item.Text,
			Sentiment: item.Sentiment,
			CreatedAt: item.CreatedAt,
		})
	}
	return analyzed, nil
}

func fatal(err error) {
	var rateErr *client.RateLimitError
	if errors.As(err, &rateErr) {
		fmt.Fprintf(os.Stderr, "Error: %s. Retry in %s.\n", rateErr.Message, rateErr.Wait.Round(time.Second))
		os.Exit(1)
	}
	if errors.Is(err, client.ErrNotAuthenticated) {
		fmt.Fprintln(os.Stderr, "Error: not signed in. Run tweetpulse-cli login first.")
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
