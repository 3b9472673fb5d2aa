package catalog

import "context"

// SampleProvider supplies the built-in demonstration catalogs. It is the
// fallback source when no CSV directory, remote repository, or SQLite
// snapshot is configured or reachable.
type SampleProvider struct{}

func NewSampleProvider() SampleProvider {
	return SampleProvider{}
}

// Corpora returns the five sample corpora.
func (SampleProvider) Corpora(_ context.Context) (map[Domain]*Corpus, error) {
	return map[Domain]*Corpus{
		DomainMovies:  NewCorpus(DomainMovies, sampleMovies()),
		DomainTVShows: NewCorpus(DomainTVShows, sampleTVShows()),
		DomainMusic:   NewCorpus(DomainMusic, sampleMusic()),
		DomainBooks:   NewCorpus(DomainBooks, sampleBooks()),
		DomainFood:    NewCorpus(DomainFood, sampleFood()),
	}, nil
}

func sampleMovies() []Item {
	return []Item{
		{
			Title: "The Shawshank Redemption", Genre: "Drama", Mood: "Inspiring",
			Keywords: "prison hope redemption", Rating: 9.3,
			Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		},
		{
			Title: "The Godfather", Genre: "Crime", Mood: "Intense",
			Keywords: "mafia family power", Rating: 9.2,
			Description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		},
		{
			Title: "The Dark Knight", Genre: "Action", Mood: "Thrilling",
			Keywords: "superhero villain chaos", Rating: 9.0,
			Description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		},
		{
			Title: "Pulp Fiction", Genre: "Crime", Mood: "Edgy",
			Keywords: "crime nonlinear storytelling", Rating: 8.9,
			Description: "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		},
		{
			Title: "Forrest Gump", Genre: "Drama", Mood: "Heartwarming",
			Keywords: "life journey love", Rating: 8.8,
			Description: "The presidencies of Kennedy and Johnson, the events of Vietnam, Watergate, and other historical events unfold through the perspective of an Alabama man with an IQ of 75.",
		},
		{
			Title: "Inception", Genre: "Sci-Fi", Mood: "Mind-bending",
			Keywords: "dreams reality layers", Rating: 8.8,
			Description: "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		},
		{
			Title: "The Matrix", Genre: "Action", Mood: "Exciting",
			Keywords: "simulation action philosophy", Rating: 8.7,
			Description: "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
		},
	}
}

func sampleTVShows() []Item {
	return []Item{
		{
			Title: "Breaking Bad", Genre: "Drama", Mood: "Intense",
			Keywords: "chemistry crime transformation", Rating: 9.5,
			Description: "A high school chemistry teacher diagnosed with cancer turns to manufacturing and selling methamphetamine to secure his family's future.",
		},
		{
			Title: "Game of Thrones", Genre: "Fantasy", Mood: "Epic",
			Keywords: "fantasy politics dragons", Rating: 9.2,
			Description: "Nine noble families fight for control over the lands of Westeros, while an ancient enemy returns after being dormant for millennia.",
		},
		{
			Title: "Friends", Genre: "Comedy", Mood: "Funny",
			Keywords: "friendship comedy relationships", Rating: 8.9,
			Description: "Follows the personal and professional lives of six twenty to thirty-something-year-old friends living in Manhattan.",
		},
		{
			Title: "Stranger Things", Genre: "Sci-Fi", Mood: "Nostalgic",
			Keywords: "80s supernatural mystery", Rating: 8.7,
			Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments, terrifying supernatural forces and one strange little girl.",
		},
		{
			Title: "The Office", Genre: "Comedy", Mood: "Quirky",
			Keywords: "workplace mockumentary comedy", Rating: 8.9,
			Description: "A mockumentary on a group of typical office workers, where the workday consists of ego clashes, inappropriate behavior, and tedium.",
		},
		{
			Title: "The Crown", Genre: "Drama", Mood: "Regal",
			Keywords: "royalty history drama", Rating: 8.6,
			Description: "Follows the political rivalries and romance of Queen Elizabeth II's reign and the events that shaped the second half of the 20th century.",
		},
	}
}

func sampleMusic() []Item {
	return []Item{
		{
			Title: "Bohemian Rhapsody", Artist: "Queen", Genre: "Rock", Mood: "Epic",
			Keywords: "opera rock epic",
			Lyrics:   "Is this the real life? Is this just fantasy? Caught in a landslide...",
		},
		{
			Title: "Hotel California", Artist: "Eagles", Genre: "Rock", Mood: "Mysterious",
			Keywords: "california hotel mystery",
			Lyrics:   "On a dark desert highway, cool wind in my hair...",
		},
		{
			Title: "Blinding Lights", Artist: "The Weeknd", Genre: "Pop", Mood: "Energetic",
			Keywords: "synthwave retro upbeat",
			Lyrics:   "I been tryna call, I been on my own for long enough...",
		},
		{
			Title: "Shape of You", Artist: "Ed Sheeran", Genre: "Pop", Mood: "Catchy",
			Keywords: "pop catchy dance",
			Lyrics:   "The club isn't the best place to find a lover...",
		},
		{
			Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Genre: "Rock", Mood: "Nostalgic",
			Keywords: "rock guitar riff nostalgic",
			Lyrics:   "She's got a smile that it seems to me, reminds me of childhood memories...",
		},
		{
			Title: "Billie Jean", Artist: "Michael Jackson", Genre: "Pop", Mood: "Iconic",
			Keywords: "pop iconic dance",
			Lyrics:   "She was more like a beauty queen from a movie scene...",
		},
	}
}

func sampleBooks() []Item {
	return []Item{
		{
			Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction", Mood: "Thought-provoking",
			Keywords: "racism justice childhood", Rating: 4.7,
			Description: "The story of young Scout Finch and her father, a lawyer who defends a black man accused of raping a white woman in the Depression-era South.",
		},
		{
			Title: "1984", Author: "George Orwell", Genre: "Dystopian", Mood: "Dark",
			Keywords: "totalitarianism surveillance rebellion", Rating: 4.6,
			Description: "A dystopian social science fiction novel that examines the consequences of totalitarianism, mass surveillance, and repressive regimentation.",
		},
		{
			Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Mood: "Romantic",
			Keywords: "love class society", Rating: 4.5,
			Description: "A romantic novel of manners that depicts the emotional development of protagonist Elizabeth Bennet.",
		},
		{
			Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction", Mood: "Tragic",
			Keywords: "american dream jazz age", Rating: 4.3,
			Description: "A story of Jay Gatsby, a self-made millionaire, and his pursuit of Daisy Buchanan, a wealthy young woman whom he loved in his youth.",
		},
		{
			Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", Mood: "Adventurous",
			Keywords: "quest fantasy adventure", Rating: 4.8,
			Description: "A fantasy novel about the adventures of hobbit Bilbo Baggins, who is hired as a burglar by a group of dwarves on a quest to reclaim their mountain home from a dragon.",
		},
		{
			Title: "The Catcher in the Rye", Author: "J.D. Salinger", Genre: "Fiction", Mood: "Coming-of-age",
			Keywords: "teenage angst identity", Rating: 4.2,
			Description: "A story about Holden Caulfield and his experiences in New York City after being expelled from prep school.",
		},
	}
}

func sampleFood() []Item {
	return []Item{
		{
			Title: "Spaghetti Carbonara", Cuisine: "Italian", Mood: "Comforting",
			Keywords: "pasta bacon egg cheese", Rating: 4.8,
			Ingredients: "Spaghetti, eggs, cheese, pancetta, black pepper",
			Description: "A classic Italian pasta dish with a creamy egg-based sauce, pancetta, and cheese.",
		},
		{
			Title: "Chicken Tikka Masala", Cuisine: "Indian", Mood: "Spicy",
			Keywords: "chicken creamy tomato spicy", Rating: 4.5,
			Ingredients: "Chicken, yogurt, spices, tomato sauce, cream",
			Description: "A popular Indian dish featuring grilled chicken in a spiced tomato and cream sauce.",
		},
		{
			Title: "Vegetable Stir Fry", Cuisine: "Asian", Mood: "Healthy",
			Keywords: "vegetables quick healthy", Rating: 4.2,
			Ingredients: "Mixed vegetables, soy sauce, garlic, ginger, oil",
			Description: "A quick and healthy dish with fresh vegetables stir-fried with Asian flavors.",
		},
		{
			Title: "Chocolate Chip Cookies", Cuisine: "American", Mood: "Sweet",
			Keywords: "chocolate sweet baked", Rating: 4.7,
			Ingredients: "Flour, butter, sugar, chocolate chips, eggs",
			Description: "Classic homemade cookies with chunks of chocolate throughout.",
		},
		{
			Title: "Avocado Toast", Cuisine: "International", Mood: "Fresh",
			Keywords: "avocado bread simple", Rating: 4.0,
			Ingredients: "Bread, avocado, salt, pepper, olive oil",
			Description: "Simple yet delicious toast topped with mashed avocado and seasonings.",
		},
		{
			Title: "Greek Salad", Cuisine: "Greek", Mood: "Refreshing",
			Keywords: "cucumber tomato feta", Rating: 4.3,
			Ingredients: "Cucumber, tomato, red onion, feta cheese, olives, olive oil",
			Description: "A refreshing salad with Mediterranean ingredients and a tangy dressing.",
		},
	}
}
