// Package content holds the static portfolio dataset.
package content

// Portfolio is everything the panels render.
type Portfolio struct {
	Name        string
	Headline    []string
	Location    string
	Status      string
	About       string
	Services    []string
	Projects    []Project
	Experiences []Experience
	Tech        []string
	Connect     []Link
	Email       string
	GitHubURL   string
}

type Project struct {
	Name        string
	Description string
	Tags        []string
	SourceURL   string
}

type Experience struct {
	Title   string
	Company string
	Date    string
	Points  []string
}

type Link struct {
	Title string
	URL   string
}

// QuickLinks returns the social links shown while no view is open.
func (p Portfolio) QuickLinks() []Link {
	if len(p.Connect) > 3 {
		return p.Connect[:3]
	}
	return p.Connect
}

// Default returns the portfolio served by the site.
func Default() Portfolio {
	return Portfolio{
		Name:     "Viplove Itankar",
		Headline: []string{"Software Developer", "Network Administrator"},
		Location: "India",
		Status:   "Open to Work",
		About: `I am a developer with a unique background in Ethical Hacking and Network Administration.
I build secure, scalable web applications using the MERN stack and Next.js.
Currently exploring AI integration and advanced React patterns.`,
		Services: []string{
			"Network Administrator",
			"Ethical Hacker",
			"Web Developer",
			"Backend Developer",
			"Python Developer",
			"Data Scientist",
			"AI Enthusiast",
			"Problem Solving",
		},
		Projects:    projects,
		Experiences: experiences,
		Tech:        []string{"HTML 5", "CSS 3", "JavaScript", "React JS", "Three JS", "Python"},
		Connect: []Link{
			{Title: "Github", URL: "https://github.com/vip847/"},
			{Title: "Instagram", URL: "https://instagram.com/viplove_itankar847/"},
			{Title: "LinkedIn", URL: "https://linkedin.com/in/viplao847/"},
			{Title: "Gmail", URL: "mailto:viplaoitankar26@gmail.com"},
			{Title: "Contact No", URL: "tel:+919422686346"},
			{Title: "WhatsApp", URL: "https://wa.me/qr/DEW5VVCJ2CTIM1"},
		},
		Email:     "viplaoitankar26@gmail.com",
		GitHubURL: "https://github.com/vip847",
	}
}

var experiences = []Experience{
	{
		Title:   "Ethical Hacker",
		Company: "SmartKnowers",
		Date:    "February 2022 - March 2022",
		Points: []string{
			"Troubleshot problems and diagnosed system faults.",
			"Identified issues, analyzed information and provided solutions to problems.",
			"Configured and maintained database servers, ensuring security.",
			"Independently analyzed, solved and corrected issues on databases, networks, software and hardware in real-time.",
		},
	},
	{
		Title:   "Network Administrator",
		Company: "Xceller IT Services",
		Date:    "August 2022 - October 2022",
		Points: []string{
			"Developing a network architecture and managing it.",
			"Enabling router and switches for secure connection.",
			"Managing the network and making it as compact, secure and usable as possible.",
			"Troubleshooting errors in network.",
		},
	},
	{
		Title:   "Cyber Security",
		Company: "Edunet",
		Date:    "January 2023 - March 2023",
		Points: []string{
			"Developing and maintaining virtual labs for testing on different systems.",
			"Collaborating with cross-functional teams to gather information required for penetration.",
			"Exploiting vulnerabilities in webapp and servers.",
			"Reporting about vulnerabilities and providing solutions for them.",
		},
	},
	{
		Title:   "Python Developer",
		Company: "InternPe",
		Date:    "May 2023 - June 2023",
		Points: []string{
			"Developing and maintaining applications using Python and other related technologies.",
			"Collaborating with cross-functional teams to create high-quality products.",
			"Implementing analysing code and fixing errors.",
			"Participating in code reviews and providing constructive feedback to other developers.",
		},
	},
}

var projects = []Project{
	{
		Name:        "Portfolio",
		Description: "A web based reactjs portfolio having 3D components using threejs and related technologies.",
		Tags:        []string{"reactjs", "threejs", "tailwindcss"},
		SourceURL:   "https://github.com/vip847/Portfolio",
	},
	{
		Name:        "Digital Clock",
		Description: "A python application which shows time in 12hrs clock and 24hrs clock and date.",
		Tags:        []string{"python", "tkinter"},
		SourceURL:   "https://github.com/vip847/Digital-Clock",
	},
	{
		Name:        "Rock Paper Scissors",
		Description: "A interactive command line interface based python game.",
		Tags:        []string{"python"},
		SourceURL:   "https://github.com/vip847/rock-paper-scissors",
	},
	{
		Name:        "Tic Tac Toe Game",
		Description: "An interactive graphical Tic Tac Toe game with graphical user interface.",
		Tags:        []string{"python", "pygame"},
		SourceURL:   "https://github.com/vip847/tic-tac-toe",
	},
	{
		Name:        "DHCP with RIP",
		Description: "A network Architecture have enabled RIP routing protocol with DHCP pool on router.",
		Tags:        []string{"router_config", "RIP", "DHCP"},
		SourceURL:   "https://github.com/vip847/DHCP",
	},
	{
		Name:        "Weather Predictor",
		Description: "Python application used to check current weather condition of any city in real time.",
		Tags:        []string{"python", "open_weather_API"},
		SourceURL:   "https://github.com/vip847/Python-and-cs",
	},
	{
		Name:        "Medical Chatbot",
		Description: "An AI based model using python and openai API which gives suggestions to person suffering by any disease taking disease name and severity as input.",
		Tags:        []string{"python", "openai_API"},
		SourceURL:   "https://github.com/vip847/medical-chatbot",
	},
	{
		Name:        "ShutDown App",
		Description: "A python application with graphical user interface used to perform operations like shutdown, restart, logout, sleep.",
		Tags:        []string{"python", "tkinter"},
		SourceURL:   "https://github.com/vip847/Shutdown-using-python",
	},
	{
		Name:        "E-commerce Website",
		Description: "A web based application which allow users to search, purchase and manage cloth shopping from hacer platform.",
		Tags:        []string{"html", "bootstrap", "javascript"},
		SourceURL:   "https://github.com/vip847/Ecommerce-website",
	},
	{
		Name:        "Image Recognition Model",
		Description: "Image Recognition model is python and neural network model which is used to recognize pattern in image.",
		Tags:        []string{"python", "neural_network", "keras"},
		SourceURL:   "https://github.com/vip847/python",
	},
	{
		Name:        "House Price Prediction",
		Description: "House Price Prediction is linear regression based model which predicts price of house on various aspects.",
		Tags:        []string{"python", "linear_regression", "numpy"},
		SourceURL:   "https://github.com/vip847/Python-and-Machine-Learning/",
	},
}
